package player

import "github.com/annel0/blockverse/internal/vec"

// Settings - физические константы контроллера
type Settings struct {
	Speed            float64
	SprintSpeed      float64
	Gravity          float64
	JumpImpulse      float64
	TerminalVelocity float64
	HitRange         int
	Friction         float64
	// PointerDivisor - во сколько раз дельта указателя меньше поворота в градусах
	PointerDivisor float64
	Spawn          vec.Vec3Float
}

// DefaultSettings возвращает исходные значения
func DefaultSettings() Settings {
	return Settings{
		Speed:            0.3,
		SprintSpeed:      0.5,
		Gravity:          0.01,
		JumpImpulse:      0.05,
		TerminalVelocity: 5,
		HitRange:         8,
		Friction:         0.25,
		PointerDivisor:   8,
		Spawn:            vec.Vec3Float{X: 0, Y: 80, Z: 0},
	}
}

// withDefaults подставляет значения по умолчанию вместо нулевых
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Speed == 0 {
		s.Speed = d.Speed
	}
	if s.SprintSpeed == 0 {
		s.SprintSpeed = d.SprintSpeed
	}
	if s.Gravity == 0 {
		s.Gravity = d.Gravity
	}
	if s.JumpImpulse == 0 {
		s.JumpImpulse = d.JumpImpulse
	}
	if s.TerminalVelocity == 0 {
		s.TerminalVelocity = d.TerminalVelocity
	}
	if s.HitRange == 0 {
		s.HitRange = d.HitRange
	}
	if s.Friction == 0 {
		s.Friction = d.Friction
	}
	if s.PointerDivisor == 0 {
		s.PointerDivisor = d.PointerDivisor
	}
	return s
}
