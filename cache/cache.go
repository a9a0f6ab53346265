package cache

import (
	"fmt"
	"github.com/SasukeBo/configer"
	"github.com/astaxie/beego/cache"
	"time"
)

var (
	globalCache cache.Cache
	expiredTime = configer.GetInt("cache_expired_time")
)

func init() {
	var err error
	globalCache, err = cache.NewCache("memory", `{"interval":60}`)
	if err != nil {
		panic(fmt.Sprintf("initial global cache failed: %v", err))
	}
}

// Set cache
func Set(key string, value interface{}) error {
	return globalCache.Put(key, value, time.Duration(expiredTime)*time.Second)
}

// Get interface value
func Get(key string) interface{} {
	return globalCache.Get(key)
}
