package permission

import (
	"testing"

	"go-group-chat/internal/model"
)

func TestIsOwner(t *testing.T) {
	owner := &model.User{ID: 1}
	stranger := &model.User{ID: 2}

	tests := []struct {
		name    string
		ownerID uint
		caller  *model.User
		want    bool
	}{
		{
			name:    "Owner matches",
			ownerID: 1,
			caller:  owner,
			want:    true,
		},
		{
			name:    "Different user",
			ownerID: 1,
			caller:  stranger,
			want:    false,
		},
		{
			name:    "Anonymous caller",
			ownerID: 1,
			caller:  nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOwner(tt.ownerID, tt.caller); got != tt.want {
				t.Errorf("IsOwner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsGroupOwner(t *testing.T) {
	authorID := uint(1)
	author := &model.User{ID: 1}
	stranger := &model.User{ID: 2}
	group := &model.Group{ID: 10, AuthorID: &authorID}
	orphanGroup := &model.Group{ID: 11, AuthorID: nil} // 作者已被删除

	tests := []struct {
		name   string
		group  *model.Group
		caller *model.User
		want   bool
	}{
		{
			name:   "Author matches",
			group:  group,
			caller: author,
			want:   true,
		},
		{
			name:   "Different user",
			group:  group,
			caller: stranger,
			want:   false,
		},
		{
			name:   "Anonymous caller",
			group:  group,
			caller: nil,
			want:   false,
		},
		{
			name:   "Group without author",
			group:  orphanGroup,
			caller: author,
			want:   false,
		},
		{
			name:   "Nil group",
			group:  nil,
			caller: author,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGroupOwner(tt.group, tt.caller); got != tt.want {
				t.Errorf("IsGroupOwner() = %v, want %v", got, tt.want)
			}
		})
	}
}
