package services_test

import (
	"testing"

	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"
	"agrofeira/internal/repositories"
	"agrofeira/internal/services"
	"agrofeira/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegistration() services.RegisterInput {
	return services.RegisterInput{
		Name:     "Ana Souza",
		Email:    "ana@feira.com",
		Phone:    "11999990000",
		CPF:      "529.982.247-25",
		Address:  "Rua das Flores, 10",
		Password: "Senha123",
	}
}

func TestProducerService_Register(t *testing.T) {
	t.Run("hashes password and normalizes cpf", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)

		mockRepo.On("ExistsByEmailOrCPF", "ana@feira.com", "52998224725").Return(false, nil).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.Producer")).Return(nil).Once()

		producer, err := service.Register(validRegistration())
		require.NoError(t, err)
		assert.Equal(t, "52998224725", producer.CPF)
		assert.NotEqual(t, "Senha123", producer.Password)
		assert.NoError(t, password.Compare(producer.Password, "Senha123"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate email or cpf", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)

		mockRepo.On("ExistsByEmailOrCPF", "ana@feira.com", "52998224725").Return(true, nil).Once()

		_, err := service.Register(validRegistration())
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		assert.Equal(t, repositories.ErrProducerExists, err.Error())
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("invalid cpf", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)

		in := validRegistration()
		in.CPF = "111.111.111-11"
		_, err := service.Register(in)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		mockRepo.AssertNotCalled(t, "ExistsByEmailOrCPF", mock.Anything, mock.Anything)
	})

	t.Run("weak password", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)

		in := validRegistration()
		in.Password = "senhafraca"
		_, err := service.Register(in)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestProducerService_UpdateProfile(t *testing.T) {
	stored := func() *models.Producer {
		return &models.Producer{
			ID:                "p-1",
			Name:              "Ana",
			EstablishmentName: "Sitio",
			Phone:             "111",
			Address:           "Rua 1",
			Password:          hashFor(t, "Senha123"),
		}
	}

	t.Run("applies non-empty fields", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)
		mockRepo.On("FindByID", "p-1").Return(stored(), nil).Once()
		mockRepo.On("Update", mock.AnythingOfType("*models.Producer")).Return(nil).Once()

		empty := ""
		got, err := service.UpdateProfile("p-1", "p-1", services.ProfileUpdate{
			CurrentPassword:   "Senha123",
			Name:              "Ana Lima",
			EstablishmentName: &empty,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana Lima", got.Name)
		assert.Equal(t, "", got.EstablishmentName)
		assert.Equal(t, "111", got.Phone)
		assert.Equal(t, "Rua 1", got.Address)
		mockRepo.AssertExpectations(t)
	})

	t.Run("other producer is forbidden", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)

		_, err := service.UpdateProfile("p-2", "p-1", services.ProfileUpdate{CurrentPassword: "Senha123"})
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything)
	})

	t.Run("missing or wrong current password", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)
		mockRepo.On("FindByID", "p-1").Return(stored(), nil).Twice()

		_, err := service.UpdateProfile("p-1", "p-1", services.ProfileUpdate{Name: "X"})
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
		assert.Equal(t, services.ErrCurrentPasswordRequired, err.Error())

		_, err = service.UpdateProfile("p-1", "p-1", services.ProfileUpdate{CurrentPassword: "Errada123", Name: "X"})
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
		assert.Equal(t, services.ErrCurrentPasswordWrong, err.Error())
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)
		mockRepo.On("FindByID", "p-1").Return(nil, apperrors.NotFound("producer not found")).Once()

		_, err := service.UpdateProfile("p-1", "p-1", services.ProfileUpdate{CurrentPassword: "Senha123"})
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestProducerService_ChangePassword(t *testing.T) {
	producer := &models.Producer{ID: "p-1", Password: hashFor(t, "Senha123")}

	cases := []struct {
		name string
		in   services.PasswordChange
		kind apperrors.Kind
	}{
		{"missing fields", services.PasswordChange{CurrentPassword: "Senha123", NewPassword: "Nova1234"}, apperrors.KindValidation},
		{"confirmation mismatch", services.PasswordChange{CurrentPassword: "Senha123", NewPassword: "Nova1234", ConfirmNewPassword: "Nova12345"}, apperrors.KindValidation},
		{"weak new password", services.PasswordChange{CurrentPassword: "Senha123", NewPassword: "fraca", ConfirmNewPassword: "fraca"}, apperrors.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockProducerRepository)
			service := services.NewProducerService(mockRepo, bcrypt.MinCost)

			err := service.ChangePassword("p-1", "p-1", tc.in)
			assert.True(t, apperrors.Is(err, tc.kind))
			mockRepo.AssertNotCalled(t, "Update", mock.Anything)
		})
	}

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)
		mockRepo.On("FindByID", "p-1").Return(producer, nil).Once()

		err := service.ChangePassword("p-1", "p-1", services.PasswordChange{
			CurrentPassword: "Errada123", NewPassword: "Nova1234", ConfirmNewPassword: "Nova1234",
		})
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
	})

	t.Run("forbidden for another producer", func(t *testing.T) {
		service := services.NewProducerService(new(MockProducerRepository), bcrypt.MinCost)
		err := service.ChangePassword("p-2", "p-1", services.PasswordChange{
			CurrentPassword: "Senha123", NewPassword: "Nova1234", ConfirmNewPassword: "Nova1234",
		})
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run("success rehashes", func(t *testing.T) {
		mockRepo := new(MockProducerRepository)
		service := services.NewProducerService(mockRepo, bcrypt.MinCost)
		mockRepo.On("FindByID", "p-1").Return(&models.Producer{ID: "p-1", Password: producer.Password}, nil).Once()
		mockRepo.On("Update", mock.MatchedBy(func(p *models.Producer) bool {
			return password.Compare(p.Password, "Nova1234") == nil
		})).Return(nil).Once()

		err := service.ChangePassword("p-1", "p-1", services.PasswordChange{
			CurrentPassword: "Senha123", NewPassword: "Nova1234", ConfirmNewPassword: "Nova1234",
		})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestProducerService_Delete(t *testing.T) {
	producer := &models.Producer{ID: "p-1", Password: hashFor(t, "Senha123")}

	mockRepo := new(MockProducerRepository)
	service := services.NewProducerService(mockRepo, bcrypt.MinCost)

	assert.True(t, apperrors.Is(service.Delete("p-2", "p-1", "Senha123"), apperrors.KindForbidden))

	mockRepo.On("FindByID", "p-1").Return(producer, nil).Times(3)
	assert.True(t, apperrors.Is(service.Delete("p-1", "p-1", ""), apperrors.KindUnauthenticated))
	assert.True(t, apperrors.Is(service.Delete("p-1", "p-1", "Errada123"), apperrors.KindUnauthenticated))

	mockRepo.On("Delete", "p-1").Return(nil).Once()
	require.NoError(t, service.Delete("p-1", "p-1", "Senha123"))
	mockRepo.AssertExpectations(t)
}
