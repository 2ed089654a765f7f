package rabbitmq

const (
	FOLLOWS_QUEUE  = "follows"
	LIKES_QUEUE    = "likes"
	COMMENTS_QUEUE = "comments"
)

var Queues = []string{FOLLOWS_QUEUE, LIKES_QUEUE, COMMENTS_QUEUE}

var queueByType = map[string]string{
	"FOLLOW":  FOLLOWS_QUEUE,
	"LIKE":    LIKES_QUEUE,
	"COMMENT": COMMENTS_QUEUE,
}

// QueueFor returns the queue notifications of the given type are published to.
func QueueFor(notificationType string) (string, bool) {
	queue, ok := queueByType[notificationType]
	return queue, ok
}
