package ai

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Options — необязательные параметры создания провайдера. BaseURL
// используется в основном тестами для подмены реального API.
type Options struct {
	Model   string
	BaseURL string
}

// Constructor создает провайдер по ключу API и опциям.
type Constructor func(apiKey string, opts Options) (Provider, error)

// Registry хранит известные конструкторы провайдеров по имени.
// Имена нечувствительны к регистру.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry возвращает реестр со встроенными провайдерами
// deepseek и openrouter.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[string]Constructor)}

	r.Register("deepseek", func(apiKey string, opts Options) (Provider, error) {
		return NewDeepSeek(apiKey, opts)
	})
	r.Register("openrouter", func(apiKey string, opts Options) (Provider, error) {
		return NewOpenRouter(apiKey, opts)
	})

	return r
}

// Register добавляет конструктор под указанным именем. Повторная
// регистрация перезаписывает предыдущий конструктор.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[strings.ToLower(name)] = ctor
}

// Create создает провайдер по имени. Неизвестное имя — ошибка со списком
// доступных провайдеров.
func (r *Registry) Create(name, apiKey string, opts Options) (Provider, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown AI provider %q, available: %s", name, strings.Join(r.Available(), ", "))
	}
	return ctor(apiKey, opts)
}

// Available возвращает отсортированный список зарегистрированных имен.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
