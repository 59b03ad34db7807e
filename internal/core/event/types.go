package event

// GameOver is sent when the player ship touches an active enemy.
type GameOver struct{}
