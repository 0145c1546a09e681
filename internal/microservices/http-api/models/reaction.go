package models

// UserSet is an insertion-ordered set of user identities.
// Stored as a plain array so existing documents stay readable.
type UserSet []string

// NewUserSet builds a set, dropping empty and duplicate ids.
func NewUserSet(ids ...string) UserSet {
	s := make(UserSet, 0, len(ids))
	for _, id := range ids {
		if id != "" && !s.Contains(id) {
			s = append(s, id)
		}
	}
	return s
}

func (s UserSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s UserSet) Len() int { return len(s) }

func (s *UserSet) add(id string) {
	if !s.Contains(id) {
		*s = append(*s, id)
	}
}

func (s *UserSet) remove(id string) {
	out := (*s)[:0]
	for _, v := range *s {
		if v != id {
			out = append(out, v)
		}
	}
	*s = out
}

// moveUser places id in to and guarantees it is absent from from.
// Both toggles go through here so the two sets stay disjoint.
func moveUser(from, to *UserSet, id string) {
	from.remove(id)
	to.add(id)
}

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// ReactionResult is the state after a toggle.
type ReactionResult struct {
	Kind     ReactionKind
	Active   bool // whether the acted-upon reaction is now set
	Liked    bool
	Disliked bool
	Likes    int
	Dislikes int
}

// ToggleLike flips userID's like. Liking clears an existing dislike.
func (r *Review) ToggleLike(userID string) (ReactionResult, error) {
	return r.toggleReaction(ReactionLike, userID)
}

// ToggleDislike flips userID's dislike. Disliking clears an existing like.
func (r *Review) ToggleDislike(userID string) (ReactionResult, error) {
	return r.toggleReaction(ReactionDislike, userID)
}

func (r *Review) toggleReaction(kind ReactionKind, userID string) (ReactionResult, error) {
	if userID == "" {
		return ReactionResult{}, ErrMissingUserID
	}
	if r.IsRemoved {
		return ReactionResult{}, ErrReviewNotFound
	}

	own, other := &r.LikedBy, &r.DislikedBy
	if kind == ReactionDislike {
		own, other = other, own
	}

	active := !own.Contains(userID)
	if active {
		moveUser(other, own, userID)
	} else {
		own.remove(userID)
	}
	r.SyncCounters()

	return ReactionResult{
		Kind:     kind,
		Active:   active,
		Liked:    r.LikedBy.Contains(userID),
		Disliked: r.DislikedBy.Contains(userID),
		Likes:    r.Likes,
		Dislikes: r.Dislikes,
	}, nil
}

// SyncCounters recomputes the denormalized counts from the sets.
func (r *Review) SyncCounters() {
	r.Likes = r.LikedBy.Len()
	r.Dislikes = r.DislikedBy.Len()
}
