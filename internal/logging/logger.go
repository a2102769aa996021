package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня из конфигурации. Неизвестное имя даёт INFO.
func ParseLevel(name string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger представляет логгер компонента: консоль и (опционально) файл
type Logger struct {
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
	mu              sync.Mutex
}

var (
	settingsMu   sync.RWMutex
	logDir       string // пустая строка - только консоль
	consoleLevel = INFO
	fileLevel    = DEBUG

	// defaultLogger работает без инициализации, чтобы тесты и утилиты не
	// создавали файлов
	defaultLogger = newConsoleLogger("default", os.Stdout)
)

func newConsoleLogger(component string, w io.Writer) *Logger {
	return &Logger{
		component:       component,
		consoleLogger:   log.New(w, "", log.LstdFlags),
		minConsoleLevel: consoleLevel,
		minFileLevel:    fileLevel,
	}
}

// Configure задаёт каталог файлов логов и пороги уровней для новых логгеров.
// dir == "" отключает запись в файлы.
func Configure(dir string, console, file LogLevel) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logDir = dir
	consoleLevel = console
	fileLevel = file
}

// NewLogger создаёт логгер компонента. Если задан каталог логов, сообщения
// дублируются в файл <component>_<timestamp>.log.
func NewLogger(component string) (*Logger, error) {
	settingsMu.RLock()
	dir, cLevel, fLevel := logDir, consoleLevel, fileLevel
	settingsMu.RUnlock()

	l := newConsoleLogger(component, os.Stdout)
	l.minConsoleLevel = cLevel
	l.minFileLevel = fLevel

	if dir == "" {
		return l, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	l.file = file
	l.fileLogger = log.New(file, "", log.LstdFlags)
	return l, nil
}

// InitDefaultLogger пересоздаёт логгер по умолчанию для компонента
func InitDefaultLogger(component string) error {
	l, err := NewLogger(component)
	if err != nil {
		return err
	}
	defaultLogger = l
	return nil
}

// CloseDefaultLogger закрывает файл логгера по умолчанию
func CloseDefaultLogger() {
	if defaultLogger != nil {
		_ = defaultLogger.Close()
	}
}

// Close закрывает файл логгера, если он открыт
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

// Component возвращает имя компонента
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) logMessage(level LogLevel, format string, args ...interface{}) {
	message := fmt.Sprintf("[%s] [%s] %s", level.String(), l.component, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLogger != nil && level >= l.minFileLevel {
		l.fileLogger.Println(message)
	}
	if level >= l.minConsoleLevel {
		l.consoleLogger.Println(message)
	}
}

// Trace логирует сообщение уровня TRACE
func (l *Logger) Trace(format string, args ...interface{}) { l.logMessage(TRACE, format, args...) }

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) { l.logMessage(DEBUG, format, args...) }

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) { l.logMessage(INFO, format, args...) }

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) { l.logMessage(WARN, format, args...) }

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) { l.logMessage(ERROR, format, args...) }

// Trace логирует сообщение уровня TRACE в логгер по умолчанию
func Trace(format string, args ...interface{}) { defaultLogger.Trace(format, args...) }

// Debug логирует сообщение уровня DEBUG в логгер по умолчанию
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }

// Info логирует сообщение уровня INFO в логгер по умолчанию
func Info(format string, args ...interface{}) { defaultLogger.Info(format, args...) }

// Warn логирует сообщение уровня WARN в логгер по умолчанию
func Warn(format string, args ...interface{}) { defaultLogger.Warn(format, args...) }

// Error логирует сообщение уровня ERROR в логгер по умолчанию
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }

// LogBlockEdit логирует изменение блока игроком
func LogBlockEdit(l *Logger, action string, x, y, z int, blockType string) {
	l.Debug("Block %s at (%d,%d,%d) type=%s", action, x, y, z, blockType)
}

// LogChunkGenerated логирует генерацию чанка
func LogChunkGenerated(l *Logger, chunkX, chunkZ int, elapsed time.Duration) {
	l.Trace("Chunk generated: chunk(%d,%d) in %s", chunkX, chunkZ, elapsed)
}
