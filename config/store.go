package config

import (
	"errors"
	"gopkg.in/yaml.v3"
	"os"
	"sync"
)

// Store is a flat string key/value store, the values are JSON documents.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
	All() (map[string]string, error)
}

type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

func (self *MemoryStore) Get(key string) (string, bool, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	v, ok := self.data[key]
	return v, ok, nil
}

func (self *MemoryStore) Set(key string, value string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.data[key] = value
	return nil
}

func (self *MemoryStore) Delete(key string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	delete(self.data, key)
	return nil
}

func (self *MemoryStore) All() (map[string]string, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	out := make(map[string]string, len(self.data))
	for k, v := range self.data {
		out[k] = v
	}
	return out, nil
}

// FileStore keeps the properties as a YAML mapping in a single file. The
// file is read on every access and rewritten on every change. A missing file
// is an empty store.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		Path: path,
	}
}

type fileDoc struct {
	Properties map[string]string `yaml:"properties"`
}

func (self *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(self.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	doc := fileDoc{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Properties == nil {
		doc.Properties = map[string]string{}
	}
	return doc.Properties, nil
}

func (self *FileStore) save(props map[string]string) error {
	data, err := yaml.Marshal(&fileDoc{Properties: props})
	if err != nil {
		return err
	}
	return os.WriteFile(self.Path, data, 0644)
}

func (self *FileStore) Get(key string) (string, bool, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	props, err := self.load()
	if err != nil {
		return "", false, err
	}
	v, ok := props[key]
	return v, ok, nil
}

func (self *FileStore) Set(key string, value string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	props, err := self.load()
	if err != nil {
		return err
	}
	props[key] = value
	return self.save(props)
}

func (self *FileStore) Delete(key string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	props, err := self.load()
	if err != nil {
		return err
	}
	if _, ok := props[key]; !ok {
		return nil
	}
	delete(props, key)
	return self.save(props)
}

func (self *FileStore) All() (map[string]string, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.load()
}
