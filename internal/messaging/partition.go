package messaging

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Partition maps a message key to one of n partitions. Equal keys always land
// on the same partition, which is what keeps per-key ordering.
func Partition(key string, n int) int {
	if n <= 1 {
		return 0
	}
	return int(xxhash.Sum64String(key) % uint64(n))
}

func RoutingKey(partition int) string {
	return strconv.Itoa(partition)
}

// QueueName is the queue holding one partition of exchange for one consumer group.
func QueueName(exchange, group string, partition int) string {
	return fmt.Sprintf("%s.%s.%d", exchange, group, partition)
}
