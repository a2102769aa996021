package player

import "math"

// ChangeBlockSelection сдвигает курсор каталога на round(scroll).
// Перенос одиночный: за концом - в начало, перед началом - в конец.
// Сдвиг больше длины каталога не нормализуется по модулю.
func (c *Controller) ChangeBlockSelection(scroll float64) {
	index := c.cursor + int(math.RoundToEven(scroll))
	if index > len(c.catalog)-1 {
		index = 0
	} else if index < 0 {
		index = len(c.catalog) - 1
	}
	c.cursor = index
}

// CurrentBlockType возвращает выбранный тип блока (текст подписи)
func (c *Controller) CurrentBlockType() string {
	return c.catalog[c.cursor]
}

// BlockCursor возвращает индекс выбранного типа в каталоге
func (c *Controller) BlockCursor() int {
	return c.cursor
}

// Catalog возвращает копию каталога типов блоков
func (c *Controller) Catalog() []string {
	out := make([]string, len(c.catalog))
	copy(out, c.catalog)
	return out
}
