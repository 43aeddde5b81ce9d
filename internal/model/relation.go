package model

import "github.com/google/uuid"

// Follow is an established follow edge: FollowerID follows FolloweeID.
type Follow struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
}

// FollowRequest is a pending follow edge: RequesterID asked to follow TargetID.
// A pending request and an established follow for the same ordered pair never
// coexist in the intended final state; accepting clears the request row before
// inserting the follow row.
type FollowRequest struct {
	RequesterID uuid.UUID `json:"requester_id"`
	TargetID    uuid.UUID `json:"target_id"`
}
