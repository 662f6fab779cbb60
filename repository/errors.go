package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// IntegrityKind classifies a rejected write.
type IntegrityKind int

const (
	// ReferentialIntegrity means a referenced parent row does not exist.
	ReferentialIntegrity IntegrityKind = iota + 1
	// Uniqueness means a unique column or composite key already holds the value.
	Uniqueness
)

func (k IntegrityKind) String() string {
	switch k {
	case ReferentialIntegrity:
		return "referential integrity violation"
	case Uniqueness:
		return "uniqueness violation"
	default:
		return "integrity violation"
	}
}

// IntegrityError is returned by inserts the store refused because of a constraint.
type IntegrityError struct {
	Kind   IntegrityKind
	Entity string
	Err    error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Entity, e.Kind, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// ErrNegativeDuration is returned when a track is created with duration_ms < 0.
var ErrNegativeDuration = errors.New("track duration must not be negative")

// IsReferentialIntegrity reports whether err is a missing-parent violation.
func IsReferentialIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie) && ie.Kind == ReferentialIntegrity
}

// IsUniqueness reports whether err is a uniqueness violation.
func IsUniqueness(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie) && ie.Kind == Uniqueness
}

// MySQL server error numbers.
const (
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1216
	mysqlNoReferencedRow2 = 1452
)

// translateError maps driver constraint failures onto IntegrityError and
// leaves every other error untouched.
func translateError(entity string, err error) error {
	if err == nil {
		return nil
	}

	kind := integrityKind(err)
	if kind == 0 {
		return err
	}
	return &IntegrityError{Kind: kind, Entity: entity, Err: err}
}

func integrityKind(err error) IntegrityKind {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return ReferentialIntegrity
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return Uniqueness
		}
		return 0
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry:
			return Uniqueness
		case mysqlNoReferencedRow, mysqlNoReferencedRow2:
			return ReferentialIntegrity
		}
		return 0
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Uniqueness
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ReferentialIntegrity
	}
	return 0
}
