package card

import (
	"context"
	"errors"
	"testing"

	"backend/internal/app/activity"
	"backend/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	moveResult      *MoveResult
	moveErr         error
	moveCalls       int
	crossBoardCalls int
	assignees       []uint64
	assigned        []*Assignment
	boardOfList     map[uint64]uint64
}

func (r *fakeRepo) GetCardByID(id string) (*Card, error) {
	return &Card{ID: id, ListID: 1, Title: "card"}, nil
}

func (r *fakeRepo) ListByList(listID uint64) ([]*Card, error) { return nil, nil }
func (r *fakeRepo) CreateAtTail(c *Card) error                { return nil }
func (r *fakeRepo) UpdateFields(id string, fields map[string]interface{}) error {
	return nil
}
func (r *fakeRepo) Delete(id string) (*MoveResult, error) { return r.moveResult, r.moveErr }

func (r *fakeRepo) Move(ctx context.Context, cardID string, sourceListID, targetListID uint64, newIndex int) (*MoveResult, error) {
	r.moveCalls++
	return r.moveResult, r.moveErr
}

func (r *fakeRepo) MoveAcrossBoards(ctx context.Context, cardID string, targetBoardID, targetListID uint64, newIndex int) (*MoveResult, error) {
	r.crossBoardCalls++
	return r.moveResult, r.moveErr
}

func (r *fakeRepo) ListAssigneeIDs(cardID string) ([]uint64, error) { return r.assignees, nil }
func (r *fakeRepo) ListAssignments(cardID string) ([]*Assignment, error) {
	return r.assigned, nil
}

func (r *fakeRepo) Assign(a *Assignment) error {
	r.assigned = append(r.assigned, a)
	return nil
}

func (r *fakeRepo) Unassign(cardID string, userID uint64) (bool, error) { return true, nil }

func (r *fakeRepo) BoardIDOfCard(cardID string) (uint64, error) { return 1, nil }

func (r *fakeRepo) BoardIDOfList(listID uint64) (uint64, error) {
	if r.boardOfList != nil {
		if id, ok := r.boardOfList[listID]; ok {
			return id, nil
		}
		return 0, apperr.NotFound("list %d not found", listID)
	}
	return 1, nil
}

type fakePerms struct {
	allowed map[uint64]bool
	calls   []uint64
}

func (p *fakePerms) HasPermission(userID, boardID uint64, action string) (bool, error) {
	p.calls = append(p.calls, boardID)
	return p.allowed[boardID], nil
}

type loggedAction struct {
	cardID   string
	category string
	text     string
}

type fakeActivities struct {
	entries []loggedAction
	err     error
}

func (a *fakeActivities) LogAction(cardID string, actorID *uint64, category, text string) (*activity.Entry, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.entries = append(a.entries, loggedAction{cardID: cardID, category: category, text: text})
	return &activity.Entry{ID: "entry-1", CardID: cardID, Category: category, Text: text}, nil
}

type notifyCall struct {
	activityID string
	category   string
	recipients []uint64
}

type fakeNotifier struct {
	calls []notifyCall
}

func (n *fakeNotifier) NotifyUsers(activityID, category string, actorID uint64, recipientIDs []uint64) {
	n.calls = append(n.calls, notifyCall{activityID: activityID, category: category, recipients: recipientIDs})
}

type publishedEvent struct {
	name string
	data map[string]interface{}
}

type fakeBus struct {
	events []publishedEvent
}

func (b *fakeBus) Publish(event string, data interface{}) {
	payload, _ := data.(map[string]interface{})
	b.events = append(b.events, publishedEvent{name: event, data: payload})
}

type fixture struct {
	repo       *fakeRepo
	perms      *fakePerms
	activities *fakeActivities
	notifier   *fakeNotifier
	bus        *fakeBus
	svc        Service
}

func newFixture(repo *fakeRepo, perms *fakePerms) *fixture {
	f := &fixture{
		repo:       repo,
		perms:      perms,
		activities: &fakeActivities{},
		notifier:   &fakeNotifier{},
		bus:        &fakeBus{},
	}
	f.svc = NewService(repo, perms, f.activities, f.notifier, nil, f.bus, 0, zap.NewNop())
	return f
}

func intPtr(v int) *int { return &v }

func sameListResult(pos int) *MoveResult {
	return &MoveResult{
		Card:            &Card{ID: "card-1", ListID: 10, Position: pos},
		SourceListID:    10,
		TargetListID:    10,
		SourceBoardID:   1,
		TargetBoardID:   1,
		SourceListTitle: "Doing",
		TargetListTitle: "Doing",
	}
}

func crossListResult() *MoveResult {
	return &MoveResult{
		Card:            &Card{ID: "card-1", ListID: 20, Position: 0},
		SourceListID:    10,
		TargetListID:    20,
		SourceBoardID:   1,
		TargetBoardID:   1,
		SourceListTitle: "Doing",
		TargetListTitle: "Done",
	}
}

func crossBoardResult() *MoveResult {
	return &MoveResult{
		Card:            &Card{ID: "card-1", ListID: 30, Position: 2},
		SourceListID:    10,
		TargetListID:    30,
		SourceBoardID:   1,
		TargetBoardID:   2,
		SourceListTitle: "Doing",
		TargetListTitle: "Backlog",
		SourceBoardName: "Sprint",
		TargetBoardName: "Roadmap",
	}
}

func TestMoveCardIntraListIsSilent(t *testing.T) {
	repo := &fakeRepo{moveResult: sameListResult(0), assignees: []uint64{7}}
	f := newFixture(repo, &fakePerms{allowed: map[uint64]bool{1: true}})

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 10, NewIndex: intPtr(0),
	}, 5)
	require.NoError(t, err)

	assert.Empty(t, f.activities.entries, "intra-list reorder must not write activity")
	assert.Empty(t, f.notifier.calls, "intra-list reorder must not notify")
	require.Len(t, f.bus.events, 1)
	assert.Equal(t, "card_moved", f.bus.events[0].name)
	assert.Equal(t, uint64(1), f.bus.events[0].data["board_id"])
}

func TestMoveCardNoOpPublishesNothing(t *testing.T) {
	res := sameListResult(3)
	res.NoOp = true
	repo := &fakeRepo{moveResult: res}
	f := newFixture(repo, &fakePerms{allowed: map[uint64]bool{1: true}})

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 10, NewIndex: intPtr(3),
	}, 5)
	require.NoError(t, err)

	assert.Empty(t, f.bus.events)
	assert.Empty(t, f.activities.entries)
	assert.Empty(t, f.notifier.calls)
}

func TestMoveCardCrossListLogsAndNotifies(t *testing.T) {
	repo := &fakeRepo{moveResult: crossListResult(), assignees: []uint64{7, 8}}
	f := newFixture(repo, &fakePerms{allowed: map[uint64]bool{1: true}})

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 20, NewIndex: intPtr(0),
	}, 5)
	require.NoError(t, err)

	require.Len(t, f.activities.entries, 1)
	assert.Equal(t, activity.CategoryMove, f.activities.entries[0].category)
	assert.Contains(t, f.activities.entries[0].text, `"Doing"`)
	assert.Contains(t, f.activities.entries[0].text, `"Done"`)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, "entry-1", f.notifier.calls[0].activityID)
	assert.Equal(t, []uint64{7, 8}, f.notifier.calls[0].recipients)

	require.Len(t, f.bus.events, 1)
	assert.Equal(t, uint64(10), f.bus.events[0].data["source_list_id"])
	assert.Equal(t, uint64(20), f.bus.events[0].data["target_list_id"])
}

func TestMoveCardInvalidIndex(t *testing.T) {
	repo := &fakeRepo{moveResult: sameListResult(0)}
	f := newFixture(repo, &fakePerms{allowed: map[uint64]bool{1: true}})

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 10,
	}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))

	err = f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 10, NewIndex: intPtr(-1),
	}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))

	assert.Zero(t, repo.moveCalls, "invalid index must be rejected before the transaction")
}

func TestMoveCardRequiresSourceBoardPermission(t *testing.T) {
	repo := &fakeRepo{moveResult: sameListResult(0)}
	perms := &fakePerms{allowed: map[uint64]bool{}}
	f := newFixture(repo, perms)

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 10, NewIndex: intPtr(0),
	}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindPermission))

	assert.Zero(t, repo.moveCalls, "denied actor must not reach the transaction")
	assert.Equal(t, []uint64{1}, perms.calls, "the source board gates the move")
	assert.Empty(t, f.bus.events)
}

func TestMoveCardUnknownSourceListIsNotFound(t *testing.T) {
	repo := &fakeRepo{moveResult: sameListResult(0), boardOfList: map[uint64]uint64{}}
	perms := &fakePerms{allowed: map[uint64]bool{1: true}}
	f := newFixture(repo, perms)

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 99, TargetListID: 99, NewIndex: intPtr(0),
	}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "a missing list is not a malformed request")
	assert.Zero(t, repo.moveCalls)
}

func TestMoveCardPropagatesNotFound(t *testing.T) {
	repo := &fakeRepo{moveErr: apperr.NotFound("card %s not found", "card-1")}
	f := newFixture(repo, &fakePerms{allowed: map[uint64]bool{1: true}})

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 20, NewIndex: intPtr(0),
	}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Empty(t, f.bus.events)
}

func TestMoveCardToBoardDeniedBeforeWrite(t *testing.T) {
	repo := &fakeRepo{moveResult: crossBoardResult()}
	perms := &fakePerms{allowed: map[uint64]bool{1: true, 2: false}}
	f := newFixture(repo, perms)

	err := f.svc.MoveCardToBoard(context.Background(), MoveCardToBoardRequest{
		CardID: "card-1", TargetBoardID: 2, TargetListID: 30, NewIndex: intPtr(0),
	}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindPermission))

	assert.Zero(t, repo.crossBoardCalls, "denied actor must not reach the transaction")
	assert.Equal(t, []uint64{2}, perms.calls, "only the destination board is checked")
	assert.Empty(t, f.bus.events)
}

func TestMoveCardToBoardFansOutToBothBoards(t *testing.T) {
	repo := &fakeRepo{moveResult: crossBoardResult(), assignees: []uint64{7}}
	f := newFixture(repo, &fakePerms{allowed: map[uint64]bool{1: true, 2: true}})

	err := f.svc.MoveCardToBoard(context.Background(), MoveCardToBoardRequest{
		CardID: "card-1", TargetBoardID: 2, TargetListID: 30, NewIndex: intPtr(2),
	}, 5)
	require.NoError(t, err)

	require.Len(t, f.activities.entries, 1)
	assert.Contains(t, f.activities.entries[0].text, `"Sprint"`)
	assert.Contains(t, f.activities.entries[0].text, `"Roadmap"`)

	require.Len(t, f.bus.events, 2)
	assert.Equal(t, uint64(1), f.bus.events[0].data["board_id"])
	assert.Equal(t, uint64(2), f.bus.events[1].data["board_id"])
	assert.Equal(t, uint64(2), f.bus.events[0].data["target_board_id"])
}

func TestMoveCardActivityFailureDoesNotFailMove(t *testing.T) {
	repo := &fakeRepo{moveResult: crossListResult(), assignees: []uint64{7}}
	f := newFixture(repo, &fakePerms{allowed: map[uint64]bool{1: true}})
	f.activities.err = errors.New("activity store down")

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{
		CardID: "card-1", SourceListID: 10, TargetListID: 20, NewIndex: intPtr(0),
	}, 5)
	require.NoError(t, err, "side-effect failure must not surface after commit")

	assert.Empty(t, f.notifier.calls, "notification depends on the activity entry")
	require.Len(t, f.bus.events, 1, "live event still goes out")
}

func TestAssignUserRequiresMembership(t *testing.T) {
	repo := &fakeRepo{}
	// Board 1 checks: actor allowed, assignee (user 9) not a member. The
	// fake answers per board, so split actor and assignee across results.
	perms := &assignPerms{actorID: 5, memberIDs: map[uint64]bool{5: true}}
	f := &fixture{
		repo:       repo,
		activities: &fakeActivities{},
		notifier:   &fakeNotifier{},
		bus:        &fakeBus{},
	}
	f.svc = NewService(repo, perms, f.activities, f.notifier, nil, f.bus, 0, zap.NewNop())

	err := f.svc.AssignUser(context.Background(), "card-1", 9, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
	assert.Empty(t, repo.assigned)
}

func TestAssignUserNotifiesAssignee(t *testing.T) {
	repo := &fakeRepo{}
	perms := &assignPerms{actorID: 5, memberIDs: map[uint64]bool{5: true, 9: true}}
	f := &fixture{
		repo:       repo,
		activities: &fakeActivities{},
		notifier:   &fakeNotifier{},
		bus:        &fakeBus{},
	}
	f.svc = NewService(repo, perms, f.activities, f.notifier, nil, f.bus, 0, zap.NewNop())

	err := f.svc.AssignUser(context.Background(), "card-1", 9, 5)
	require.NoError(t, err)

	require.Len(t, repo.assigned, 1)
	assert.Equal(t, uint64(5), repo.assigned[0].AssignedBy)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, activity.CategoryAssignment, f.notifier.calls[0].category)
	assert.Equal(t, []uint64{9}, f.notifier.calls[0].recipients)

	require.Len(t, f.bus.events, 1)
	assert.Equal(t, "card_assigned", f.bus.events[0].name)
}

// assignPerms answers per user instead of per board: assignment checks the
// actor's move permission and the assignee's membership on the same board.
type assignPerms struct {
	actorID   uint64
	memberIDs map[uint64]bool
}

func (p *assignPerms) HasPermission(userID, boardID uint64, action string) (bool, error) {
	return p.memberIDs[userID], nil
}
