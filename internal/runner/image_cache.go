package runner

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const maxCachedImages = 64

// imageCache serves raw image bytes, reading each path at most once while it stays cached.
type imageCache struct {
	cache *lru.Cache[string, []byte]
	read  func(string) ([]byte, error)
}

func newImageCache(size int, read func(string) ([]byte, error)) (*imageCache, error) {
	if size < 1 {
		size = 1
	}
	if size > maxCachedImages {
		size = maxCachedImages
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	return &imageCache{cache: cache, read: read}, nil
}

// Load returns the bytes at path, reading the file on a cache miss.
func (c *imageCache) Load(path string) ([]byte, error) {
	if data, ok := c.cache.Get(path); ok {
		return data, nil
	}
	data, err := c.read(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	c.cache.Add(path, data)
	return data, nil
}
