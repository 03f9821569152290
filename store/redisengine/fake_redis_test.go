package redisengine_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// fakeRedis answers the commands the repository uses from memory.
// It is installed as a hook, so the client never dials.
type fakeRedis struct {
	mu      sync.Mutex
	strings map[string]string
	sets    map[string]map[string]struct{}
	failure error
}

func newFakeClient() (*redis.Client, *fakeRedis) {
	fake := &fakeRedis{
		strings: make(map[string]string),
		sets:    make(map[string]map[string]struct{}),
	}

	client := redis.NewClient(&redis.Options{Addr: "fake:6379"})
	client.AddHook(fake)

	return client, fake
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("fake redis does not dial")
	}
}

func (f *fakeRedis) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		return f.apply(cmd)
	}
}

func (f *fakeRedis) ProcessPipelineHook(_ redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			if err := f.apply(cmd); err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
		}

		return nil
	}
}

func (f *fakeRedis) members(key string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.sets[key]))
	for member := range f.sets[key] {
		out = append(out, member)
	}

	return out
}

func (f *fakeRedis) apply(cmd redis.Cmder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failure != nil {
		cmd.SetErr(f.failure)
		return f.failure
	}

	args := cmd.Args()

	switch strings.ToLower(cmd.Name()) {
	case "get":
		value, ok := f.strings[arg(args[1])]
		if !ok {
			cmd.SetErr(redis.Nil)
			return redis.Nil
		}

		cmd.(*redis.StringCmd).SetVal(value)

	case "set":
		f.strings[arg(args[1])] = arg(args[2])
		cmd.(*redis.StatusCmd).SetVal("OK")

	case "del":
		var removed int64
		for _, key := range args[1:] {
			if _, ok := f.strings[arg(key)]; ok {
				delete(f.strings, arg(key))
				removed++
			}
		}

		cmd.(*redis.IntCmd).SetVal(removed)

	case "sadd":
		set, ok := f.sets[arg(args[1])]
		if !ok {
			set = make(map[string]struct{})
			f.sets[arg(args[1])] = set
		}

		for _, member := range args[2:] {
			set[arg(member)] = struct{}{}
		}

		cmd.(*redis.IntCmd).SetVal(int64(len(args) - 2))

	case "srem":
		for _, member := range args[2:] {
			delete(f.sets[arg(args[1])], arg(member))
		}

		cmd.(*redis.IntCmd).SetVal(int64(len(args) - 2))

	case "smembers":
		out := make([]string, 0)
		for member := range f.sets[arg(args[1])] {
			out = append(out, member)
		}

		cmd.(*redis.StringSliceCmd).SetVal(out)

	case "mget":
		out := make([]any, 0, len(args)-1)
		for _, key := range args[1:] {
			if value, ok := f.strings[arg(key)]; ok {
				out = append(out, value)
			} else {
				out = append(out, nil)
			}
		}

		cmd.(*redis.SliceCmd).SetVal(out)

	case "multi", "exec":
		// transaction framing only

	default:
		return fmt.Errorf("fake redis: unsupported command %q", cmd.Name())
	}

	return nil
}

func arg(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
