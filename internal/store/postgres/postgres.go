// Package postgres implements the game store on Postgres via GORM. Atomic
// maps to a serializable database transaction, which is what the multi-write
// mutations (doctor reassignment, answer quorum checks) lean on.
package postgres

import (
    "context"
    "database/sql"
    "errors"

    "gorm.io/driver/postgres"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "doctordash/internal/game"
)

type Store struct {
    db *gorm.DB
}

func Open(dsn string) (*Store, error) {
    db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
    if err != nil {
        return nil, err
    }
    return New(db), nil
}

func New(db *gorm.DB) *Store {
    return &Store{db: db}
}

// AutoMigrate creates or updates the schema. Dev convenience; deployments run
// cmd/migrate instead.
func (s *Store) AutoMigrate() error {
    return s.db.AutoMigrate(
        &playerRow{},
        &roomRow{},
        &sessionRow{},
        &answerRow{},
        &activityRow{},
    )
}

func (s *Store) Atomic(ctx context.Context, fn func(game.Store) error) error {
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        return fn(&Store{db: tx})
    }, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func notFound(err error, sentinel error) error {
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return sentinel
    }
    return err
}

func (s *Store) CreatePlayer(ctx context.Context, p *game.Player) error {
    row := toPlayerRow(p)
    return s.db.WithContext(ctx).Create(&row).Error
}

func (s *Store) UpdatePlayer(ctx context.Context, p *game.Player) error {
    row := toPlayerRow(p)
    res := s.db.WithContext(ctx).Model(&playerRow{}).Where("id = ?", row.ID).
        Updates(map[string]any{
            "name":       row.Name,
            "score":      row.Score,
            "is_doctor":  row.IsDoctor,
            "avatar_tag": row.AvatarTag,
        })
    if res.Error != nil {
        return res.Error
    }
    if res.RowsAffected == 0 {
        return game.ErrPlayerNotFound
    }
    return nil
}

func (s *Store) PlayerByID(ctx context.Context, id string) (*game.Player, error) {
    var row playerRow
    if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
        return nil, notFound(err, game.ErrPlayerNotFound)
    }
    return row.toGame(), nil
}

func (s *Store) PlayerByIdentity(ctx context.Context, identity string) (*game.Player, error) {
    var row playerRow
    if err := s.db.WithContext(ctx).First(&row, "identity = ?", identity).Error; err != nil {
        return nil, notFound(err, game.ErrPlayerNotFound)
    }
    return row.toGame(), nil
}

func (s *Store) CountPlayers(ctx context.Context) (int, error) {
    var count int64
    if err := s.db.WithContext(ctx).Model(&playerRow{}).Count(&count).Error; err != nil {
        return 0, err
    }
    return int(count), nil
}

func (s *Store) CreateRoom(ctx context.Context, r *game.Room) error {
    row, err := toRoomRow(r)
    if err != nil {
        return err
    }
    return s.db.WithContext(ctx).Create(&row).Error
}

func (s *Store) UpdateRoom(ctx context.Context, r *game.Room) error {
    row, err := toRoomRow(r)
    if err != nil {
        return err
    }
    res := s.db.WithContext(ctx).Model(&roomRow{}).Where("id = ?", row.ID).
        Updates(map[string]any{"host_id": row.HostID, "members": row.Members})
    if res.Error != nil {
        return res.Error
    }
    if res.RowsAffected == 0 {
        return game.ErrRoomNotFound
    }
    return nil
}

func (s *Store) RoomByCode(ctx context.Context, code string) (*game.Room, error) {
    var row roomRow
    if err := s.db.WithContext(ctx).First(&row, "code = ?", code).Error; err != nil {
        return nil, notFound(err, game.ErrRoomNotFound)
    }
    return row.toGame()
}

func (s *Store) CreateSession(ctx context.Context, sess *game.Session) error {
    row := toSessionRow(sess)
    return s.db.WithContext(ctx).Create(&row).Error
}

func (s *Store) UpdateSession(ctx context.Context, sess *game.Session) error {
    row := toSessionRow(sess)
    res := s.db.WithContext(ctx).Model(&sessionRow{}).Where("room_id = ?", row.RoomID).
        Updates(map[string]any{
            "phase":           row.Phase,
            "current_round":   row.CurrentRound,
            "total_rounds":    row.TotalRounds,
            "prompt":          row.Prompt,
            "selected_answer": row.SelectedAnswer,
        })
    if res.Error != nil {
        return res.Error
    }
    if res.RowsAffected == 0 {
        return game.ErrSessionNotFound
    }
    return nil
}

func (s *Store) SessionByRoom(ctx context.Context, roomID string) (*game.Session, error) {
    var row sessionRow
    if err := s.db.WithContext(ctx).First(&row, "room_id = ?", roomID).Error; err != nil {
        return nil, notFound(err, game.ErrSessionNotFound)
    }
    return row.toGame(), nil
}

func (s *Store) DeleteSessionByRoom(ctx context.Context, roomID string) error {
    return s.db.WithContext(ctx).Where("room_id = ?", roomID).Delete(&sessionRow{}).Error
}

func (s *Store) CreateAnswer(ctx context.Context, a *game.Answer) error {
    row := toAnswerRow(a)
    return s.db.WithContext(ctx).Create(&row).Error
}

func (s *Store) UpdateAnswer(ctx context.Context, a *game.Answer) error {
    row := toAnswerRow(a)
    res := s.db.WithContext(ctx).Model(&answerRow{}).
        Where("room_id = ? AND round = ? AND player_id = ?", row.RoomID, row.Round, row.PlayerID).
        Update("text", row.Text)
    if res.Error != nil {
        return res.Error
    }
    if res.RowsAffected == 0 {
        return game.ErrAnswerNotFound
    }
    return nil
}

func (s *Store) AnswerByPlayer(ctx context.Context, roomID string, round int, playerID string) (*game.Answer, error) {
    var row answerRow
    err := s.db.WithContext(ctx).
        First(&row, "room_id = ? AND round = ? AND player_id = ?", roomID, round, playerID).Error
    if err != nil {
        return nil, notFound(err, game.ErrAnswerNotFound)
    }
    a := row.toGame()
    return &a, nil
}

func (s *Store) AnswersByRound(ctx context.Context, roomID string, round int) ([]game.Answer, error) {
    var rows []answerRow
    err := s.db.WithContext(ctx).
        Where("room_id = ? AND round = ?", roomID, round).
        Order("id").
        Find(&rows).Error
    if err != nil {
        return nil, err
    }
    out := make([]game.Answer, 0, len(rows))
    for _, r := range rows {
        out = append(out, r.toGame())
    }
    return out, nil
}

func (s *Store) UpsertActivity(ctx context.Context, a *game.Activity) error {
    row := toActivityRow(a)
    return s.db.WithContext(ctx).Clauses(clause.OnConflict{
        Columns:   []clause.Column{{Name: "room_code"}, {Name: "player_id"}},
        DoUpdates: clause.AssignmentColumns([]string{"player_name", "is_typing", "last_activity", "updated_at"}),
    }).Create(&row).Error
}

func (s *Store) ActivitiesByRoom(ctx context.Context, roomCode string) ([]game.Activity, error) {
    var rows []activityRow
    err := s.db.WithContext(ctx).
        Where("room_code = ?", roomCode).
        Order("player_id").
        Find(&rows).Error
    if err != nil {
        return nil, err
    }
    out := make([]game.Activity, 0, len(rows))
    for _, r := range rows {
        out = append(out, r.toGame())
    }
    return out, nil
}
