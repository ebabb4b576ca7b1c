package mysql

import (
	"errors"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Guyuepp/layers-blog/domain"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, translateError(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry"}), domain.ErrConflict)

	syntax := translateError(&mysqldrv.MySQLError{Number: 1064, Message: "syntax"})
	assert.NotErrorIs(t, syntax, domain.ErrStoreUnavailable)

	assert.ErrorIs(t, translateError(errors.New("dial tcp: connection refused")), domain.ErrStoreUnavailable)
}
