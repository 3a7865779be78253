package collisionviz

import "sync"

// task splits data in one contiguous chunk per worker and calls fn on every
// item with its index. Workers never share an index, so fn may write to
// slot i of a result slice without locking.
func task[T any](workersCount int, data []T, fn func(i int, item T)) {
	dataSize := len(data)
	if dataSize == 0 {
		return
	}
	workersCount = min(max(workersCount, 1), dataSize)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	var wg sync.WaitGroup
	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
		}(start, end)
	}
	wg.Wait()
}
