package service

import (
	"testing"

	"go-group-chat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestService() *RequestService {
	return NewRequestService(
		repository.NewSentRequestRepository(),
		repository.NewGroupRepository(),
		repository.NewGroupMemberRepository(),
	)
}

func TestRequestService_AcceptLifecycle(t *testing.T) {
	setupServiceTest(t)
	svc := newRequestService()
	author := createServiceTestUser(t, "reqAuthor1")
	applicant := createServiceTestUser(t, "reqApplicant1")
	group := createServiceTestGroup(t, "Req Group 1", author)

	request, err := svc.CreateRequest(group.Code, applicant)
	require.NoError(t, err)
	assert.Nil(t, request.Status, "New request is pending")

	err = svc.Resolve(request.ID, author, ResolveRequest{Status: "accepted"})
	require.NoError(t, err)

	member, err := repository.NewGroupMemberRepository().FindMember(group.ID, applicant.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.False(t, member.IsAdmin)
}

func TestRequestService_RejectLifecycle(t *testing.T) {
	setupServiceTest(t)
	svc := newRequestService()
	author := createServiceTestUser(t, "reqAuthor2")
	applicant := createServiceTestUser(t, "reqApplicant2")
	group := createServiceTestGroup(t, "Req Group 2", author)

	request, err := svc.CreateRequest(group.Code, applicant)
	require.NoError(t, err)

	err = svc.Resolve(request.ID, author, ResolveRequest{Status: "rejected"})
	require.NoError(t, err)

	member, err := repository.NewGroupMemberRepository().FindMember(group.ID, applicant.ID)
	require.NoError(t, err)
	assert.Nil(t, member)

	found, err := repository.NewSentRequestRepository().FindByID(request.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "Resolution always removes the request record")
}

func TestRequestService_Resolve_OwnerOnly(t *testing.T) {
	setupServiceTest(t)
	svc := newRequestService()
	author := createServiceTestUser(t, "reqAuthor3")
	applicant := createServiceTestUser(t, "reqApplicant3")
	group := createServiceTestGroup(t, "Req Group 3", author)

	request, err := svc.CreateRequest(group.Code, applicant)
	require.NoError(t, err)

	// Applicants cannot accept their own request
	err = svc.Resolve(request.ID, applicant, ResolveRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrForbidden)

	found, err := repository.NewSentRequestRepository().FindByID(request.ID)
	require.NoError(t, err)
	assert.NotNil(t, found, "Denied resolution must leave the request in place")
}

func TestRequestService_CreateRequest_MemberRejected(t *testing.T) {
	setupServiceTest(t)
	svc := newRequestService()
	author := createServiceTestUser(t, "reqAuthor4")
	group := createServiceTestGroup(t, "Req Group 4", author)

	// The author is already a member via the bootstrap
	_, err := svc.CreateRequest(group.Code, author)
	require.Error(t, err)
	assert.Equal(t, "already a member of this group", err.Error())
}

func TestRequestService_ListGroupRequests_OwnerOnly(t *testing.T) {
	setupServiceTest(t)
	svc := newRequestService()
	author := createServiceTestUser(t, "reqAuthor5")
	applicant := createServiceTestUser(t, "reqApplicant5")
	group := createServiceTestGroup(t, "Req Group 5", author)

	_, err := svc.CreateRequest(group.Code, applicant)
	require.NoError(t, err)

	_, err = svc.ListGroupRequests(group.Code, applicant)
	assert.ErrorIs(t, err, ErrForbidden)

	requests, err := svc.ListGroupRequests(group.Code, author)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}
