package chatdesk

// Role identifies who produced a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry. Messages are immutable once
// appended to a session's history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// MessageList holds an ordered collection of messages to preserve the
// conversation history.
type MessageList struct {
	messages []Message
}

func NewMessageList(msgs ...Message) *MessageList {
	return &MessageList{messages: append([]Message{}, msgs...)}
}

func (ml *MessageList) Len() int {
	return len(ml.messages)
}

// Add appends one or more messages in FIFO order.
func (ml *MessageList) Add(msgs ...Message) {
	ml.messages = append(ml.messages, msgs...)
}

// All returns a defensive copy of the history, in order.
func (ml *MessageList) All() []Message {
	return append([]Message{}, ml.messages...)
}

// At returns the message at index i.
func (ml *MessageList) At(i int) Message {
	return ml.messages[i]
}

// Last returns the most recent message and true, or a zero Message and
// false when the list is empty.
func (ml *MessageList) Last() (Message, bool) {
	if len(ml.messages) == 0 {
		return Message{}, false
	}
	return ml.messages[len(ml.messages)-1], true
}
