package image

import (
	"context"
	"sync"
)

// ResolveMany 用固定大小的工作池为一批名字解析图片。
// 每个worker领取下一个未处理的下标直到没有剩余；
// 无论完成顺序如何，输出切片与输入名字一一对应。
func (r *Resolver) ResolveMany(ctx context.Context, topic string, names []string, concurrency int) []Resolved {
	results := make([]Resolved, len(names))
	if len(names) == 0 {
		return results
	}

	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(names) {
		concurrency = len(names)
	}

	var mu sync.Mutex
	nextIndex := 0

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				current := nextIndex
				nextIndex++
				mu.Unlock()
				if current >= len(names) {
					return
				}
				results[current] = r.Resolve(ctx, names[current], topic)
			}
		}()
	}
	wg.Wait()

	return results
}
