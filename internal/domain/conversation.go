package domain

import "fmt"

// ConversationID keys the conversation between two users. The smaller id
// always comes first so both participants resolve to the same key.
func ConversationID(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// OtherParticipant returns the id in the pair that is not userID.
func OtherParticipant(senderID, receiverID, userID uint) uint {
	if senderID == userID {
		return receiverID
	}
	return senderID
}
