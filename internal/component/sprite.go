package component

// Image names the placeholder art a renderer draws for an entity.
type Image string

const (
	ImagePlayer Image = "sprites/player.png"
	ImageBullet Image = "sprites/bullet.png"
	ImageEnemy  Image = "sprites/enemy.png"
)

// Sprite is the visual attachment: an image handle plus its world extent.
type Sprite struct {
	Image  Image
	Width  float64
	Height float64
}

var (
	PlayerSprite = Sprite{Image: ImagePlayer, Width: 25, Height: 25}
	BulletSprite = Sprite{Image: ImageBullet, Width: 10, Height: 20}
	EnemySprite  = Sprite{Image: ImageEnemy, Width: 30, Height: 30}
)

// Camera marks the entity renderers look through. It always sits at the origin.
type Camera struct{}
