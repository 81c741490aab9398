package cortado

// Version is the interpreter release identifier reported by the CLI.
const Version = "0.1.0"
