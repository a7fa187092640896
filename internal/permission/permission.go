package permission

import "go-group-chat/internal/model"

// 对象级权限检查。caller为nil表示匿名调用者，一律拒绝。

// IsOwner 对象属主检查：对象上记录的用户就是调用者本人
func IsOwner(ownerID uint, caller *model.User) bool {
	return caller != nil && ownerID == caller.ID
}

// IsGroupOwner 群主检查：群组的作者就是调用者本人。
// 作者被删除后AuthorID为nil，此时没有任何人通过检查。
func IsGroupOwner(group *model.Group, caller *model.User) bool {
	if caller == nil || group == nil || group.AuthorID == nil {
		return false
	}
	return *group.AuthorID == caller.ID
}
