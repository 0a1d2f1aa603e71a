package repositories

import (
	"context"
	"testing"

	"subtrack/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CustomerRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       CustomerRepository
	customerID uuid.UUID
	context    context.Context
}

func (suite *CustomerRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCustomerRepository(mock)
	suite.customerID = uuid.New()
	suite.context = context.Background()
}

func (suite *CustomerRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestCustomerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepoTestSuite))
}

func (suite *CustomerRepoTestSuite) TestCreate_Success() {
	customer := &models.Customer{
		ID:    suite.customerID,
		Name:  "Acme Traders",
		Email: "accounts@acme.example",
	}

	suite.mock.ExpectExec(`INSERT INTO customers`).
		WithArgs(customer.ID, customer.Name, customer.Email, customer.Phone, customer.Company,
			customer.Address, customer.GSTNumber, customer.ContactPerson, customer.Notes).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, customer)
	assert.NoError(suite.T(), err)
}

func (suite *CustomerRepoTestSuite) TestDelete_RestrictedBySubscriptions() {
	// Postgres rejects the delete because subscriptions reference the row;
	// the repository must surface that as ErrRestricted, never as a 500-ish
	// opaque failure.
	suite.mock.ExpectExec(`DELETE FROM customers`).
		WithArgs(suite.customerID).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := suite.repo.Delete(suite.context, suite.customerID)
	assert.ErrorIs(suite.T(), err, ErrRestricted)
}

func (suite *CustomerRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM customers`).
		WithArgs(suite.customerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.customerID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *CustomerRepoTestSuite) TestUpdate_NotFound() {
	customer := &models.Customer{ID: suite.customerID, Name: "Acme", Email: "a@acme.example"}

	suite.mock.ExpectExec(`UPDATE customers`).
		WithArgs(customer.Name, customer.Email, customer.Phone, customer.Company, customer.Address,
			customer.GSTNumber, customer.ContactPerson, customer.Notes, customer.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, customer)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}
