package mysql

import (
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/layers-blog/domain"
)

const errDuplicateEntry = 1062

// translateError maps driver errors onto the domain taxonomy. Anything that is
// not a server-side MySQL error means the database could not be reached.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == errDuplicateEntry {
			return domain.ErrConflict
		}
		return fmt.Errorf("mysql: %w", err)
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
