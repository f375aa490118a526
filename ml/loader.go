package ml

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrKind 加载失败的分类
type ErrKind int

const (
	ErrKindNotFound ErrKind = iota
	ErrKindCorrupt
	ErrKindIncompatible
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindIncompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// LoadError 模型文件加载失败
type LoadError struct {
	Kind ErrKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader 按路径缓存已加载的模型句柄。成功的加载每个路径只执行一次，
// 并发首次访问由 single-flight 保证只反序列化一份；失败不进缓存。
type Loader struct {
	mu       sync.Mutex
	cache    *lru.Cache[string, *Handle]
	inflight map[string]*loadCall
	loads    atomic.Int64
}

type loadCall struct {
	done   chan struct{}
	handle *Handle
	err    error
}

func NewLoader(cacheSize int) *Loader {
	if cacheSize <= 0 {
		cacheSize = 4
	}
	cache, _ := lru.New[string, *Handle](cacheSize)
	return &Loader{
		cache:    cache,
		inflight: make(map[string]*loadCall),
	}
}

// Load 返回路径对应的模型句柄，必要时从磁盘加载
func (l *Loader) Load(path string) (*Handle, error) {
	l.mu.Lock()
	if handle, ok := l.cache.Get(path); ok {
		l.mu.Unlock()
		return handle, nil
	}
	if call, ok := l.inflight[path]; ok {
		l.mu.Unlock()
		<-call.done
		return call.handle, call.err
	}
	call := &loadCall{done: make(chan struct{})}
	l.inflight[path] = call
	l.mu.Unlock()

	call.handle, call.err = l.loadArtifact(path)

	l.mu.Lock()
	delete(l.inflight, path)
	if call.err == nil {
		l.cache.Add(path, call.handle)
	}
	l.mu.Unlock()
	close(call.done)

	return call.handle, call.err
}

// Cached 只查缓存，不触发磁盘加载
func (l *Loader) Cached(path string) (*Handle, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Get(path)
}

// Loads 返回已执行的磁盘加载次数
func (l *Loader) Loads() int64 {
	return l.loads.Load()
}

func (l *Loader) loadArtifact(path string) (*Handle, error) {
	l.loads.Add(1)

	model := &GBTree{}
	if err := model.Load(path); err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, &LoadError{Kind: ErrKindNotFound, Path: path, Err: err}
		case errors.Is(err, ErrIncompatibleArtifact):
			return nil, &LoadError{Kind: ErrKindIncompatible, Path: path, Err: err}
		default:
			return nil, &LoadError{Kind: ErrKindCorrupt, Path: path, Err: err}
		}
	}
	if err := checkSchema(model.Columns()); err != nil {
		return nil, &LoadError{Kind: ErrKindIncompatible, Path: path, Err: err}
	}
	return &Handle{model: model}, nil
}

// checkSchema 校验模型训练schema与本服务的特征顺序完全一致，
// 不一致直接拒绝，避免列对不上导致静默的错误预测
func checkSchema(columns []string) error {
	expected := Columns()
	if len(columns) != len(expected) {
		return fmt.Errorf("%w: expected %d columns, artifact has %d",
			ErrIncompatibleArtifact, len(expected), len(columns))
	}
	for i, col := range columns {
		if col != expected[i] {
			return fmt.Errorf("%w: column %d is %q, expected %q",
				ErrIncompatibleArtifact, i, col, expected[i])
		}
	}
	return nil
}
