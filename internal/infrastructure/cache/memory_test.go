package cache

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/ecoyoung/packform/internal/domain"
)

func detection(categories ...domain.Category) domain.Detection {
	d := domain.Detection{}
	for _, c := range categories {
		d.Categories = append(d.Categories, c)
		d.Evidence = append(d.Evidence, string(c))
	}
	return d
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value domain.Detection
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve single category",
			key:   "detect:fish oil",
			value: detection(domain.CategoryOil),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store and retrieve repeated categories",
			key:   "detect:vitamin d3 liquid drops",
			value: detection(domain.CategoryDrop, domain.CategoryDrop, domain.CategoryLiquid),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store empty detection",
			key:   "detect:vitamin c 500mg",
			value: domain.Detection{},
			ttl:   1 * time.Minute,
		},
		{
			name:  "store with short TTL",
			key:   "detect:expires soon",
			value: detection(domain.CategoryTablet),
			ttl:   1 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// For short TTL test, wait for expiration
			if tt.ttl < 10*time.Millisecond {
				time.Sleep(10 * time.Millisecond)
				_, err := cache.Get(ctx, tt.key)
				if err != domain.ErrCacheMiss {
					t.Errorf("Expected cache miss after expiration, got error = %v", err)
				}
				return
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if len(got.Categories) != len(tt.value.Categories) {
				t.Errorf("Get() = %+v, want %+v", got, tt.value)
			}
			for i := range tt.value.Categories {
				if got.Categories[i] != tt.value.Categories[i] || got.Evidence[i] != tt.value.Evidence[i] {
					t.Errorf("Get() = %+v, want %+v", got, tt.value)
				}
			}
		})
	}
}

func TestMemoryCache_StoresCopies(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	value := detection(domain.CategoryTablet)
	if err := cache.Set(ctx, "k", value, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value.Categories[0] = domain.CategoryGummy

	got, _ := cache.Get(ctx, "k")
	got.Evidence[0] = "mutated"

	again, _ := cache.Get(ctx, "k")
	want := detection(domain.CategoryTablet)
	if !reflect.DeepEqual(again, want) {
		t.Errorf("Get() = %+v, want %+v", again, want)
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()

	_, err := cache.Get(context.Background(), "non-existent-key")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_MaxEntries(t *testing.T) {
	cache := NewMemoryCache(3)
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("k%d", i)
		if err := cache.Set(ctx, key, detection(domain.CategoryTablet), time.Duration(i+1)*time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	// Overwriting an existing key never evicts
	if err := cache.Set(ctx, "k2", detection(domain.CategoryOil), 3*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if size := cache.Size(); size != 3 {
		t.Errorf("Size() = %d, want 3", size)
	}

	if err := cache.Set(ctx, "k3", detection(domain.CategoryGummy), 4*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if size := cache.Size(); size != 3 {
		t.Errorf("Size() = %d, want 3 after eviction", size)
	}
	if _, err := cache.Get(ctx, "k0"); err != domain.ErrCacheMiss {
		t.Errorf("entry closest to expiry should be evicted, Get(k0) error = %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, detection(domain.CategoryDrop), 1*time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestMemoryCache_CloseTwice(t *testing.T) {
	cache := NewMemoryCache(0)
	cache.Close()
	cache.Close()
}
