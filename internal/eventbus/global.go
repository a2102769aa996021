package eventbus

import "errors"

// ErrBusClosed возвращается при работе с закрытой шиной
var ErrBusClosed = errors.New("eventbus: bus closed")

var globalBus EventBus

// Init устанавливает глобальную шину. Мир, созданный без явной шины,
// публикует события в неё.
func Init(bus EventBus) { globalBus = bus }

// Global возвращает глобальную шину или nil.
func Global() EventBus { return globalBus }
