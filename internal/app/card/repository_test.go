package card_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"backend/internal/app/board"
	"backend/internal/app/card"
	"backend/internal/app/label"
	"backend/internal/app/list"
	"backend/internal/app/member"
	"backend/internal/app/user"
	"backend/internal/apperr"
	"backend/internal/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// integrationDB opens the database named by DATABASE_URL and hands the
// test a transaction that is rolled back on cleanup, so runs leave no
// rows behind. Skipped when no database is configured.
func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("integration test requires DATABASE_URL")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to open database")
	require.NoError(t, db.Migrate(conn, zap.NewNop()))

	tx := conn.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

// crossBoardFixture is two boards with partially overlapping membership
// and labels, and a card on the source board carrying one assignment and
// one label that are invalid on the destination.
type crossBoardFixture struct {
	repo card.Repository

	boardA, boardB   *board.Board
	listA, listB     *list.List
	shared, loner    *user.User // shared is on both boards, loner only on A
	labelA, labelB   *label.Label
	moverID, otherID string // cards on listA, positions 0 and 1
	sittingID        string // card on listB, position 0
}

func seedCrossBoardFixture(t *testing.T, tx *gorm.DB) *crossBoardFixture {
	t.Helper()
	f := &crossBoardFixture{repo: card.NewRepository(tx)}

	f.shared = &user.User{Email: fmt.Sprintf("shared-%s@example.com", uuid.NewString()), Nickname: "shared"}
	f.loner = &user.User{Email: fmt.Sprintf("loner-%s@example.com", uuid.NewString()), Nickname: "loner"}
	require.NoError(t, tx.Create(f.shared).Error)
	require.NoError(t, tx.Create(f.loner).Error)

	f.boardA = &board.Board{Name: "Sprint", OwnerID: f.shared.ID}
	f.boardB = &board.Board{Name: "Roadmap", OwnerID: f.shared.ID}
	require.NoError(t, tx.Create(f.boardA).Error)
	require.NoError(t, tx.Create(f.boardB).Error)

	for _, m := range []*member.BoardMember{
		{BoardID: f.boardA.ID, UserID: f.shared.ID, Role: member.RoleOwner},
		{BoardID: f.boardA.ID, UserID: f.loner.ID, Role: member.RoleMember},
		{BoardID: f.boardB.ID, UserID: f.shared.ID, Role: member.RoleOwner},
	} {
		require.NoError(t, tx.Create(m).Error)
	}

	f.listA = &list.List{BoardID: f.boardA.ID, Title: "Doing", Position: 0}
	f.listB = &list.List{BoardID: f.boardB.ID, Title: "Backlog", Position: 0}
	require.NoError(t, tx.Create(f.listA).Error)
	require.NoError(t, tx.Create(f.listB).Error)

	f.labelA = &label.Label{BoardID: f.boardA.ID, Name: "bug", Color: "#ff0000"}
	f.labelB = &label.Label{BoardID: f.boardB.ID, Name: "urgent", Color: "#00ff00"}
	require.NoError(t, tx.Create(f.labelA).Error)
	require.NoError(t, tx.Create(f.labelB).Error)

	f.moverID = uuid.NewString()
	f.otherID = uuid.NewString()
	f.sittingID = uuid.NewString()
	for _, c := range []*card.Card{
		{ID: f.moverID, ListID: f.listA.ID, Title: "mover", Position: 0},
		{ID: f.otherID, ListID: f.listA.ID, Title: "stays behind", Position: 1},
		{ID: f.sittingID, ListID: f.listB.ID, Title: "already there", Position: 0},
	} {
		require.NoError(t, tx.Create(c).Error)
	}

	for _, a := range []*card.Assignment{
		{CardID: f.moverID, UserID: f.shared.ID, AssignedBy: f.shared.ID},
		{CardID: f.moverID, UserID: f.loner.ID, AssignedBy: f.shared.ID},
	} {
		require.NoError(t, tx.Create(a).Error)
	}
	require.NoError(t, tx.Create(&label.CardLabel{CardID: f.moverID, LabelID: f.labelA.ID}).Error)
	require.NoError(t, tx.Create(&label.CardLabel{CardID: f.moverID, LabelID: f.labelB.ID}).Error)

	return f
}

func (f *crossBoardFixture) assigneeIDs(t *testing.T, tx *gorm.DB) []uint64 {
	t.Helper()
	var ids []uint64
	require.NoError(t, tx.Model(&card.Assignment{}).
		Where("card_id = ?", f.moverID).Order("user_id ASC").Pluck("user_id", &ids).Error)
	return ids
}

func (f *crossBoardFixture) labelIDs(t *testing.T, tx *gorm.DB) []uint64 {
	t.Helper()
	var ids []uint64
	require.NoError(t, tx.Model(&label.CardLabel{}).
		Where("card_id = ?", f.moverID).Order("label_id ASC").Pluck("label_id", &ids).Error)
	return ids
}

func TestMoveAcrossBoardsPrunesForeignAssociations(t *testing.T) {
	tx := integrationDB(t)
	f := seedCrossBoardFixture(t, tx)

	res, err := f.repo.MoveAcrossBoards(context.Background(), f.moverID, f.boardB.ID, f.listB.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, f.boardA.ID, res.SourceBoardID)
	assert.Equal(t, f.boardB.ID, res.TargetBoardID)

	moved, err := f.repo.GetCardByID(f.moverID)
	require.NoError(t, err)
	assert.Equal(t, f.listB.ID, moved.ListID)
	assert.Equal(t, 0, moved.Position)

	// The assignee who is not on the destination board and the source
	// board's label must be gone; the shared ones survive.
	assert.Equal(t, []uint64{f.shared.ID}, f.assigneeIDs(t, tx))
	assert.Equal(t, []uint64{f.labelB.ID}, f.labelIDs(t, tx))

	// Both containers end dense: the vacated slot closes, the occupied
	// destination slot shifts down.
	left, err := f.repo.ListByList(f.listA.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, f.otherID, left[0].ID)
	assert.Equal(t, 0, left[0].Position)

	arrived, err := f.repo.ListByList(f.listB.ID)
	require.NoError(t, err)
	require.Len(t, arrived, 2)
	assert.Equal(t, f.moverID, arrived[0].ID)
	assert.Equal(t, f.sittingID, arrived[1].ID)
	assert.Equal(t, 1, arrived[1].Position)
}

func TestMoveAcrossBoardsFailureLeavesStateUnchanged(t *testing.T) {
	tx := integrationDB(t)
	f := seedCrossBoardFixture(t, tx)

	// Target list belongs to the source board, not the named destination,
	// so the transaction must reject and roll back before any write.
	_, err := f.repo.MoveAcrossBoards(context.Background(), f.moverID, f.boardB.ID, f.listA.ID, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))

	moved, err := f.repo.GetCardByID(f.moverID)
	require.NoError(t, err)
	assert.Equal(t, f.listA.ID, moved.ListID)
	assert.Equal(t, 0, moved.Position)
	assert.Equal(t, []uint64{f.shared.ID, f.loner.ID}, f.assigneeIDs(t, tx))
	assert.Equal(t, []uint64{f.labelA.ID, f.labelB.ID}, f.labelIDs(t, tx))
}

func TestMoveUnknownSourceListIsNotFound(t *testing.T) {
	tx := integrationDB(t)
	f := seedCrossBoardFixture(t, tx)

	_, err := f.repo.Move(context.Background(), f.moverID, f.listB.ID+100000, f.listA.ID, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
