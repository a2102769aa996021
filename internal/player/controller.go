// Package player реализует контроллер игрока от первого лица: ввод,
// ориентацию камеры, гравитацию, коллизии с сеткой блоков и выбор блока
// лучом для установки и разрушения.
package player

import (
	"math"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/vec"
)

// Pitch ограничен этим диапазоном в градусах
const (
	MinPitch = -90.0
	MaxPitch = 90.0
)

// Controller хранит всё состояние аватара и продвигает его раз в тик.
// Не потокобезопасен: Update и OnPointerMove вызываются из одного цикла.
type Controller struct {
	world    WorldModel
	settings Settings
	log      *logging.Logger
	observer Observer

	position         vec.Vec3Float
	pitch            float64 // градусы, [-90, 90]
	yaw              float64 // градусы
	velocity         vec.Vec2Float
	verticalVelocity float64
	falling          bool

	adjacency physics.Adjacency
	target    Targeting

	catalog []string
	cursor  int
}

// Option настраивает контроллер при создании
type Option func(*Controller)

// WithObserver подключает получателя уведомлений о блоках
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithLogger заменяет логгер компонента
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController создаёт контроллер в точке спавна. Каталог типов блоков
// читается из мира один раз; он должен быть непустым.
func NewController(world WorldModel, settings Settings, opts ...Option) *Controller {
	c := &Controller{
		world:    world,
		settings: settings.withDefaults(),
		log:      logging.GetPlayerLogger(),
		position: settings.Spawn,
	}

	catalog := world.BlockTypeCatalog()
	c.catalog = make([]string, len(catalog))
	copy(c.catalog, catalog)
	for i, name := range c.catalog {
		if name == "Stone" {
			c.cursor = i
			break
		}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnPointerMove поворачивает камеру по движению указателя
func (c *Controller) OnPointerMove(dx, dy float64) {
	c.yaw -= dx / c.settings.PointerDivisor
	c.pitch += dy / c.settings.PointerDivisor
	c.pitch = clamp(c.pitch, MinPitch, MaxPitch)
}

// lookBasis возвращает компоненты направления взгляда:
// dx = sin(yaw'), dz = cos(yaw'), dy = sin(pitch'), где углы взяты со знаком минус
func (c *Controller) lookBasis() (dx, dy, dz float64) {
	yawRad := radians(-c.yaw)
	pitchRad := radians(-c.pitch)
	return math.Sin(yawRad), math.Sin(pitchRad), math.Cos(yawRad)
}

// LookDirection возвращает направление луча взгляда (dx, -dy, -dz)
func (c *Controller) LookDirection() vec.Vec3Float {
	dx, dy, dz := c.lookBasis()
	return vec.Vec3Float{X: dx, Y: -dy, Z: -dz}
}

// Update продвигает состояние на один тик
func (c *Controller) Update(input InputState) {
	if input.Scroll != 0 {
		c.ChangeBlockSelection(input.Scroll)
	}

	dx, dy, dz := c.lookBasis()
	c.HitTest(c.position, vec.Vec3Float{X: dx, Y: -dy, Z: -dz}, c.settings.HitRange)

	c.clampVertical()
	c.applyMovement(input, dx, dz)

	if input.Jump && !c.falling {
		c.verticalVelocity += c.settings.JumpImpulse
	}

	c.collide()

	if input.Break && c.target.Valid {
		c.breakTarget()
	}
	if input.Place && c.target.Valid {
		c.placeAtSite()
	}

	c.position.Y += c.verticalVelocity
	c.position.X += c.velocity.X
	c.position.Z += c.velocity.Y

	c.velocity = c.velocity.Mul(c.settings.Friction)
}

// applyMovement переводит зажатые клавиши в приращение горизонтальной
// скорости. Стрейф использует перпендикуляр к взгляду.
func (c *Controller) applyMovement(input InputState, dx, dz float64) {
	speed := c.settings.Speed
	if input.Sprint {
		speed = c.settings.SprintSpeed
	}

	if input.Forward {
		c.velocity.X += dx * speed
		c.velocity.Y -= dz * speed
	}
	if input.Back {
		c.velocity.X -= dx * speed
		c.velocity.Y += dz * speed
	}
	if input.Left {
		c.velocity.X -= dz * speed
		c.velocity.Y -= dx * speed
	}
	if input.Right {
		c.velocity.X += dz * speed
		c.velocity.Y += dx * speed
	}
}

// collide пересчитывает флаги соседства, применяет гравитацию и гасит
// скорость, упирающуюся в стену
func (c *Controller) collide() {
	cell := c.position.Trunc()
	c.adjacency = physics.ProbeAdjacency(cell, c.solidAt)
	c.applyGravity(cell)
	physics.ResolveHorizontal(c.position, c.adjacency, &c.velocity)
}

// applyGravity - автомат Grounded/Falling. Опора ищется на две ячейки ниже.
func (c *Controller) applyGravity(cell vec.Vec3) {
	if c.world.BlockExists(cell.X, cell.Y-2, cell.Z) {
		c.falling = false
		if c.verticalVelocity < 0 {
			c.verticalVelocity = 0
		}
		return
	}

	c.falling = true
	c.verticalVelocity -= c.settings.Gravity
	c.clampVertical()
}

func (c *Controller) clampVertical() {
	c.verticalVelocity = clamp(c.verticalVelocity, -c.settings.TerminalVelocity, c.settings.TerminalVelocity)
}

// breakTarget убирает блок под прицелом через чанк, содержащий этот блок
func (c *Controller) breakTarget() {
	pos := c.target.Block
	coord := vec.ChunkCoordOf(float64(pos.X), float64(pos.Z), c.world.ChunkSize())
	c.world.RemoveBlock(pos, c.world.ChunkAt(coord))

	logging.LogBlockEdit(c.log, "broken", pos.X, pos.Y, pos.Z, "")
	if c.observer != nil {
		c.observer.BlockBroken(pos)
	}
}

// placeAtSite ставит текущий тип блока перед целью. Вызов адресуется через
// чанк, в котором стоит сам игрок; мир сам перенаправляет его, если ячейка
// лежит в соседнем чанке.
func (c *Controller) placeAtSite() {
	pos := c.target.Site
	blockType := c.CurrentBlockType()
	coord := vec.ChunkCoordOf(c.position.X, c.position.Z, c.world.ChunkSize())
	c.world.AddBlock(pos, blockType, c.world.ChunkAt(coord))

	logging.LogBlockEdit(c.log, "placed", pos.X, pos.Y, pos.Z, blockType)
	if c.observer != nil {
		c.observer.BlockPlaced(pos, blockType)
	}
}

func (c *Controller) solidAt(pos vec.Vec3) bool {
	return c.world.BlockExists(pos.X, pos.Y, pos.Z)
}

// Position возвращает позицию аватара
func (c *Controller) Position() vec.Vec3Float {
	return c.position
}

// Orientation возвращает pitch и yaw в градусах
func (c *Controller) Orientation() (pitch, yaw float64) {
	return c.pitch, c.yaw
}

// Velocity возвращает горизонтальную скорость (X, Z мира)
func (c *Controller) Velocity() vec.Vec2Float {
	return c.velocity
}

// VerticalVelocity возвращает вертикальную скорость
func (c *Controller) VerticalVelocity() float64 {
	return c.verticalVelocity
}

// Falling сообщает, находится ли аватар в падении
func (c *Controller) Falling() bool {
	return c.falling
}

// Adjacency возвращает флаги соседства последнего тика
func (c *Controller) Adjacency() physics.Adjacency {
	return c.adjacency
}

// SurroundingOffsets возвращает единичные смещения для выставленных флагов
// соседства (для отладочного оверлея)
func (c *Controller) SurroundingOffsets() []vec.Vec3 {
	dirs := c.adjacency.Directions()
	offsets := make([]vec.Vec3, len(dirs))
	for i, d := range dirs {
		offsets[i] = d.Offset()
	}
	return offsets
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
