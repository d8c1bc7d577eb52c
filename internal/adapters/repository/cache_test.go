package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRedisRowCache(t *testing.T) {
	Convey("Given a row cache on an in-memory redis", t, func() {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer func() { _ = client.Close() }()
		cache := NewRedisRowCache(client, WithKey("test:rows"), WithTTL(time.Minute))
		ctx := context.Background()

		Convey("When nothing was saved", func() {
			_, err := cache.Load(ctx)

			Convey("Then the load is a miss", func() {
				So(err, ShouldEqual, ErrCacheMiss)
			})
		})

		Convey("When rows are saved", func() {
			fetched := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			in := CachedRows{Rows: [][]string{{"Ana", "", "x"}, {"Ben"}}, FetchedAt: fetched}
			So(cache.Save(ctx, in), ShouldBeNil)

			Convey("Then they load back unchanged", func() {
				out, err := cache.Load(ctx)
				So(err, ShouldBeNil)
				So(out.Rows, ShouldResemble, in.Rows)
				So(out.FetchedAt.Equal(fetched), ShouldBeTrue)
			})

			Convey("Then the key carries the ttl", func() {
				So(mr.TTL("test:rows"), ShouldEqual, time.Minute)
			})

			Convey("And once the ttl passes they are gone", func() {
				mr.FastForward(2 * time.Minute)
				_, err := cache.Load(ctx)
				So(err, ShouldEqual, ErrCacheMiss)
			})
		})

		Convey("When the stored value is corrupt", func() {
			So(mr.Set("test:rows", "{not json"), ShouldBeNil)
			_, err := cache.Load(ctx)

			Convey("Then the load fails with a cache error", func() {
				So(errors.Is(err, ErrCache), ShouldBeTrue)
			})
		})

		Convey("When redis is down", func() {
			mr.Close()

			Convey("Then save, load and ping fail with a cache error", func() {
				So(errors.Is(cache.Save(ctx, CachedRows{}), ErrCache), ShouldBeTrue)
				_, err := cache.Load(ctx)
				So(errors.Is(err, ErrCache), ShouldBeTrue)
				So(errors.Is(cache.Ping(ctx), ErrCache), ShouldBeTrue)
			})
		})
	})

	Convey("Given a redis url", t, func() {
		Convey("Then a valid one builds a cache", func() {
			c, err := NewRedisRowCacheFromURL("redis://localhost:6379/0")
			So(err, ShouldBeNil)
			So(c.Close(), ShouldBeNil)
		})

		Convey("Then an invalid one is rejected", func() {
			_, err := NewRedisRowCacheFromURL("http://nope")
			So(errors.Is(err, ErrCache), ShouldBeTrue)
		})
	})
}
