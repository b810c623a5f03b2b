package game

// The shared prompt corpus. Prompts are picked uniformly with replacement, so
// repeats across rounds are possible.
var prompts = []string{
    "The secret ingredient in my grandmother's famous recipe is whatchamacallit.",
    "I can't believe they're selling whatchamacallit at the grocery store now.",
    "My doctor told me to avoid whatchamacallit for my health.",
    "The new superhero's power is controlling whatchamacallit with their mind.",
    "Scientists just discovered that whatchamacallit is the key to time travel.",
    "My pet's favorite toy is a squeaky whatchamacallit.",
    "The restaurant's specialty dish is deep-fried whatchamacallit with sauce.",
    "I lost my job because I accidentally spilled whatchamacallit on my boss.",
    "The weather forecast calls for a 90% chance of whatchamacallit tomorrow.",
    "My therapist says I have an unhealthy obsession with whatchamacallit.",
}

// avatarPalette is cycled through by join order when players are first
// created.
var avatarPalette = []string{
    "crimson",
    "amber",
    "emerald",
    "teal",
    "azure",
    "violet",
    "magenta",
    "slate",
}
