package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bazaar/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	return db, mock
}

// The merge lives in this single statement: inserting an existing
// (cart_id, product_id) pair must increment the row's quantity by the
// requested amount instead of creating a second row.
var upsertPattern = regexp.QuoteMeta("INSERT INTO `cart_items`") + ".*" +
	regexp.QuoteMeta("ON DUPLICATE KEY UPDATE `quantity`=quantity + VALUES(quantity)")

func TestCartRepository_UpsertItem(t *testing.T) {
	tests := []struct {
		name     string
		quantity uint
	}{
		{name: "requested quantity flows into the insert", quantity: 2},
		{name: "zero quantity stays zero", quantity: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(upsertPattern).
				WithArgs(10, 5, tt.quantity, sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(1, 1))

			repo := NewCartRepository(db)
			err := repo.UpsertItem(context.Background(), &model.CartItem{
				CartID:    10,
				ProductID: 5,
				Quantity:  tt.quantity,
			})

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCartRepository_FindItemInActiveCart_ScopesToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	query := regexp.QuoteMeta("JOIN carts ON carts.id = cart_items.cart_id") + ".*" +
		regexp.QuoteMeta("cart_items.id = ? AND carts.user_id = ? AND carts.is_active = ?")
	mock.ExpectQuery(query).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"}).
			AddRow(1, 10, 5, 2))

	repo := NewCartRepository(db)
	item, err := repo.FindItemInActiveCart(context.Background(), 1, 3)

	assert.NoError(t, err)
	assert.Equal(t, uint(2), item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
