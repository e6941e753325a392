package model

import (
	"slices"
	"sort"
)

// Video represents a video with like tracking
type Video struct {
	ID       int64    `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Duration int64    `json:"duration" db:"duration"` // duration in seconds
	Likes    int64    `json:"likes" db:"likes"`
	LikedBy  []string `json:"likedBy" db:"liked_by"` // usernames, sorted and unique
}

// HasLikedBy reports whether username currently likes the video
func (v *Video) HasLikedBy(username string) bool {
	_, found := slices.BinarySearch(v.LikedBy, username)
	return found
}

// AddLike adds username to LikedBy. It returns false if the user
// already likes the video, in which case nothing changes.
func (v *Video) AddLike(username string) bool {
	i, found := slices.BinarySearch(v.LikedBy, username)
	if found {
		return false
	}
	v.LikedBy = slices.Insert(v.LikedBy, i, username)
	v.Likes = int64(len(v.LikedBy))
	return true
}

// RemoveLike removes username from LikedBy. It returns false if the
// user does not like the video, in which case nothing changes.
func (v *Video) RemoveLike(username string) bool {
	i, found := slices.BinarySearch(v.LikedBy, username)
	if !found {
		return false
	}
	v.LikedBy = slices.Delete(v.LikedBy, i, i+1)
	v.Likes = int64(len(v.LikedBy))
	return true
}

// ResetLikes clears all like state
func (v *Video) ResetLikes() {
	v.Likes = 0
	v.LikedBy = []string{}
}

// NormalizeLikedBy sorts and deduplicates LikedBy and recomputes Likes.
// Stores call it on every record they load.
func (v *Video) NormalizeLikedBy() {
	if v.LikedBy == nil {
		v.LikedBy = []string{}
	}
	sort.Strings(v.LikedBy)
	v.LikedBy = slices.Compact(v.LikedBy)
	v.Likes = int64(len(v.LikedBy))
}

// Clone returns a deep copy of the video
func (v *Video) Clone() *Video {
	c := *v
	c.LikedBy = slices.Clone(v.LikedBy)
	if c.LikedBy == nil {
		c.LikedBy = []string{}
	}
	return &c
}
