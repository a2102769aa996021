package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина
const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = 3   // Количество октав
)

// Noise - генератор шума Перлина, привязанный к сиду
type Noise struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума с указанным сидом
func NewNoise(seed int64) *Noise {
	return &Noise{
		seed:   seed,
		perlin: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Seed возвращает сид генератора
func (n *Noise) Seed() int64 {
	return n.seed
}

// Noise2D возвращает значение шума для координат в диапазоне [0, 1]
func (n *Noise) Noise2D(x, y float64) float64 {
	value := (n.perlin.Noise2D(x, y) + 1.0) / 2.0
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
