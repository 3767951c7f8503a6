package pms

import (
	"fmt"
	"sync"

	"stayhub/errors"
	"stayhub/models"
)

// AdapterFactory tạo adapter cho một property cụ thể
type AdapterFactory func(prop *models.Property) (Adapter, error)

// Factory giữ bảng đăng ký pms_key -> adapter, mỗi key một instance.
// Bảng được điền tường minh lúc khởi động, không scan runtime.
type Factory struct {
	mu        sync.RWMutex
	factories map[string]AdapterFactory
	instances map[string]Adapter
}

func NewFactory() *Factory {
	return &Factory{
		factories: make(map[string]AdapterFactory),
		instances: make(map[string]Adapter),
	}
}

// Register đăng ký factory cho một pms_key
func (f *Factory) Register(key string, factory AdapterFactory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.factories[key] = factory
}

// Has cho biết đã có adapter đăng ký cho key chưa
func (f *Factory) Has(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.factories[key]
	return ok
}

// GetAdapter trả về adapter cho property theo pms_key của PMS liên kết.
// Mỗi key chỉ tạo một instance, các lần sau dùng lại.
func (f *Factory) GetAdapter(prop *models.Property) (Adapter, error) {
	if prop.PMS == nil {
		return nil, errors.WrapAppError(errors.ErrCodeUnsupportedPMS,
			"Property has no PMS associated", 404, errors.ErrNoPMSLinked)
	}

	key := prop.PMS.PmsKey

	f.mu.RLock()
	if adapter, ok := f.instances[key]; ok {
		f.mu.RUnlock()
		return adapter, nil
	}
	factory, ok := f.factories[key]
	f.mu.RUnlock()

	if !ok {
		return nil, errors.WrapAppError(errors.ErrCodeUnsupportedPMS,
			fmt.Sprintf("PMS '%s' not supported", key), 404, errors.ErrUnsupportedPMS)
	}

	adapter, err := factory(prop)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.instances[key] = adapter
	f.mu.Unlock()
	return adapter, nil
}
