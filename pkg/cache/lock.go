// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired is returned when the lock is held by another owner
// and the acquisition deadline passed.
var ErrLockNotAcquired = errors.New("lock not acquired")

// releaseScript deletes the key only when it still belongs to the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Mutex is a redis-backed advisory lock. It serializes operations that must
// be globally ordered, e.g. organization-unit re-parenting within a tenant.
type Mutex struct {
	client *redis.Client
	key    string
	owner  string
	ttl    time.Duration
}

func NewMutex(client *redis.Client, key string, ttl time.Duration) *Mutex {
	return &Mutex{
		client: client,
		key:    key,
		owner:  uuid.NewString(),
		ttl:    ttl,
	}
}

// TryLock attempts a single acquisition.
func (m *Mutex) TryLock(ctx context.Context) (bool, error) {
	return m.client.SetNX(ctx, m.key, m.owner, m.ttl).Result()
}

// Lock acquires the mutex, retrying until the context is done.
func (m *Mutex) Lock(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		ok, err := m.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ErrLockNotAcquired
		case <-ticker.C:
		}
	}
}

// Unlock releases the mutex if this instance still owns it.
func (m *Mutex) Unlock(ctx context.Context) error {
	return releaseScript.Run(ctx, m.client, []string{m.key}, m.owner).Err()
}
