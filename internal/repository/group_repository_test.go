package repository

import (
	"fmt"
	"testing"

	"go-group-chat/internal/model"
	"go-group-chat/pkg/config"
	"go-group-chat/pkg/db"
	"go-group-chat/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Test Setup ---

// setupTest initializes config, logger and an in-memory database,
// and registers table cleanup for everything the tests touch.
func setupTest(t *testing.T) {
	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if logger.L == nil {
		err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode)
		if err != nil {
			t.Logf("Logger init failed (using default): %v", err)
		}
	}
	err := db.InitTestDB()
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() { cleanupTable(t, &model.MessageFile{}) })
	t.Cleanup(func() { cleanupTable(t, &model.Message{}) })
	t.Cleanup(func() { cleanupTable(t, &model.SentRequest{}) })
	t.Cleanup(func() { cleanupTable(t, &model.GroupMember{}) })
	t.Cleanup(func() { cleanupTable(t, &model.Group{}) })
	t.Cleanup(func() { cleanupTable(t, &model.UserImage{}) })
	t.Cleanup(func() { cleanupTable(t, &model.User{}) })
}

func cleanupTable(t *testing.T, entity interface{}) {
	if err := db.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(entity).Error; err != nil {
		t.Logf("Warning: Failed to cleanup table for %T: %v", entity, err)
	}
}

// Helper to create test users
func createTestUser(t *testing.T, username string) *model.User {
	user := &model.User{
		Username: username,
		Password: "testpassword",
		Email:    fmt.Sprintf("%s@example.com", username),
	}
	err := NewUserRepository().Create(user)
	require.NoError(t, err, "Failed to create test user %s", username)
	require.True(t, user.ID > 0)
	return user
}

// Helper to create a group owned by the given user
func createTestGroup(t *testing.T, name string, author *model.User) *model.Group {
	group := &model.Group{
		Name:     name,
		AuthorID: &author.ID,
	}
	err := NewGroupRepository().Create(group)
	require.NoError(t, err, "Failed to create test group %s", name)
	return group
}

// --- Tests ---

func TestGroupRepository_Create(t *testing.T) {
	setupTest(t)
	groupRepo := NewGroupRepository()
	memberRepo := NewGroupMemberRepository()
	author := createTestUser(t, "groupAuthor1")

	group := &model.Group{
		Name:     "Test Group Alpha",
		AuthorID: &author.ID,
	}

	err := groupRepo.Create(group)
	require.NoError(t, err)
	assert.True(t, group.ID > 0, "Group ID should be set after creation")

	// Verify the join code was generated on first save
	assert.Len(t, group.Code, 15)

	// Verify group exists in DB
	foundGroup, err := groupRepo.FindByCode(group.Code)
	require.NoError(t, err)
	require.NotNil(t, foundGroup)
	assert.Equal(t, group.Name, foundGroup.Name)
	require.NotNil(t, foundGroup.AuthorID)
	assert.Equal(t, author.ID, *foundGroup.AuthorID)

	// Verify the author was enrolled as an admin member atomically
	adminMember, err := memberRepo.FindMember(group.ID, author.ID)
	require.NoError(t, err)
	require.NotNil(t, adminMember, "Author should be added as a member")
	assert.True(t, adminMember.IsAdmin, "Author membership should carry the admin flag")

	members, err := memberRepo.FindGroupMembers(group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1, "New group should have exactly one member")
}

func TestGroupRepository_Create_KeepsExistingCode(t *testing.T) {
	setupTest(t)
	groupRepo := NewGroupRepository()
	author := createTestUser(t, "groupAuthor2")

	group := &model.Group{
		Name:     "Preset Code Group",
		Code:     "PRESETCODE12345",
		AuthorID: &author.ID,
	}
	err := groupRepo.Create(group)
	require.NoError(t, err)
	assert.Equal(t, "PRESETCODE12345", group.Code, "Existing code must not be regenerated")
}

func TestGroupRepository_Create_DuplicateCodeRegenerated(t *testing.T) {
	setupTest(t)
	groupRepo := NewGroupRepository()
	author := createTestUser(t, "groupAuthor7")

	first := &model.Group{
		Name:     "First Holder",
		Code:     "COLLIDINGCODE12",
		AuthorID: &author.ID,
	}
	require.NoError(t, groupRepo.Create(first))

	// Same code again: the collision is retried internally, never surfaced
	second := &model.Group{
		Name:     "Second Holder",
		Code:     "COLLIDINGCODE12",
		AuthorID: &author.ID,
	}
	err := groupRepo.Create(second)
	require.NoError(t, err, "Duplicate code must be regenerated, not returned as an error")
	assert.True(t, second.ID > 0)
	assert.Len(t, second.Code, 15)
	assert.NotEqual(t, "COLLIDINGCODE12", second.Code)

	// Both groups persisted, each reachable under its own code
	foundFirst, err := groupRepo.FindByCode("COLLIDINGCODE12")
	require.NoError(t, err)
	require.NotNil(t, foundFirst)
	assert.Equal(t, "First Holder", foundFirst.Name)

	foundSecond, err := groupRepo.FindByCode(second.Code)
	require.NoError(t, err)
	require.NotNil(t, foundSecond)
	assert.Equal(t, "Second Holder", foundSecond.Name)

	// The retried create still runs the admin bootstrap
	member, err := NewGroupMemberRepository().FindMember(second.ID, author.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.True(t, member.IsAdmin)
}

func TestGroupRepository_Update_ImmutableFields(t *testing.T) {
	setupTest(t)
	groupRepo := NewGroupRepository()
	author := createTestUser(t, "groupAuthor3")
	other := createTestUser(t, "groupAuthor4")

	group := createTestGroup(t, "Original Name", author)
	originalCode := group.Code

	group.Name = "Renamed"
	group.Description = "new description"
	// 尝试篡改不可变字段
	group.Code = "HACKED0000000AB"
	group.AuthorID = &other.ID

	err := groupRepo.Update(group)
	require.NoError(t, err)

	found, err := groupRepo.FindByCode(originalCode)
	require.NoError(t, err)
	require.NotNil(t, found, "Group must still be reachable under its original code")
	assert.Equal(t, "Renamed", found.Name)
	assert.Equal(t, "new description", found.Description)
	require.NotNil(t, found.AuthorID)
	assert.Equal(t, author.ID, *found.AuthorID, "Author must be immutable via Update")
}

func TestGroupRepository_FindByAuthor(t *testing.T) {
	setupTest(t)
	groupRepo := NewGroupRepository()
	author := createTestUser(t, "groupAuthor5")
	stranger := createTestUser(t, "groupAuthor6")

	createTestGroup(t, "Authored One", author)
	createTestGroup(t, "Authored Two", author)
	createTestGroup(t, "Not Mine", stranger)

	groups, err := groupRepo.FindByAuthor(author.ID)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
	for _, g := range groups {
		require.NotNil(t, g.AuthorID)
		assert.Equal(t, author.ID, *g.AuthorID)
	}
}

func TestGroupRepository_FindByCode_NotFound(t *testing.T) {
	setupTest(t)
	groupRepo := NewGroupRepository()

	group, err := groupRepo.FindByCode("DOESNOTEXIST123")
	require.NoError(t, err)
	assert.Nil(t, group)
}
