package player

// InputState - состояние ввода на один тик
type InputState struct {
	Forward bool `json:"forward,omitempty"`
	Back    bool `json:"back,omitempty"`
	Left    bool `json:"left,omitempty"`
	Right   bool `json:"right,omitempty"`
	Jump    bool `json:"jump,omitempty"`
	Sprint  bool `json:"sprint,omitempty"`

	// Break и Place - разовые действия (клики)
	Break bool `json:"break,omitempty"`
	Place bool `json:"place,omitempty"`

	// Scroll - прокрутка колеса для смены типа блока
	Scroll float64 `json:"scroll,omitempty"`
}

// Idle сообщает, что на этом тике ничего не нажато
func (in InputState) Idle() bool {
	return in == InputState{}
}
