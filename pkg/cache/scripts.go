package cache

import (
	"github.com/go-redis/redis/v8"
)

// Lua scripts for Redis operations
var (
	setTaggedScript     *redis.Script
	invalidateTagScript *redis.Script
)

func init() {
	// store a value and register its key in every tag set.
	// KEYS[1] value key, ARGV[1] payload, ARGV[2] ttl seconds, ARGV[3..] tag set keys
	setTaggedScript = redis.NewScript(`
		local ttl = tonumber(ARGV[2])
		redis.call('SET', KEYS[1], ARGV[1], 'EX', ttl)
		for i = 3, #ARGV do
			redis.call('SADD', ARGV[i], KEYS[1])
			if redis.call('TTL', ARGV[i]) < ttl then
				redis.call('EXPIRE', ARGV[i], ttl)
			end
		end
		return 1
	`)

	// remove every key registered in a tag set, then the set itself.
	invalidateTagScript = redis.NewScript(`
		local keys = redis.call('SMEMBERS', KEYS[1])
		for i = 1, #keys, 500 do
			redis.call('DEL', unpack(keys, i, math.min(i + 499, #keys)))
		end
		redis.call('DEL', KEYS[1])
		return #keys
	`)
}
