package rabbitmq

const (
	FOLLOWS_QUEUE   = "follows"
	NEW_POSTS_QUEUE = "posts.new"
)

var queues = []string{
	FOLLOWS_QUEUE,
	NEW_POSTS_QUEUE,
}
