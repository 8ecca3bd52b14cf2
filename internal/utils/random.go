package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/identity"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Anna", "Núria", "Pere", "Martí", "Laia", "Jordi", "Montse", "Oriol",
	"Carme", "Marc", "Mercè", "Pau", "Júlia", "Quim", "Roser", "Xavier",
}

var commonSurnames = []string{
	"Soler", "Vidal", "Camps", "Pagès", "Ferrer", "Puig", "Serra", "Font",
	"Bosch", "Roca", "Vila", "Costa", "Mas", "Riera", "Sala", "Torrent",
}

func GenerateRandomCatalanName() string {
	return commonFirstNames[rand.Intn(len(commonFirstNames))] + " " + commonSurnames[rand.Intn(len(commonSurnames))]
}

var roles = []domain.Role{
	domain.RoleWorker,
	domain.RoleCoordinator,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromName(fullName string) string {
	username := strings.ReplaceAll(identity.Normalize(fullName), " ", ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string, department string) (*domain.User, error) {
	fullName := GenerateRandomCatalanName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        strings.ReplaceAll(username, ".", "") + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		Department:   department,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var upper = "ABCDEFGHJKLMNPRSTVWXYZ"

// GenerateRandomPlate produces a Spanish-format plate (4 digits + 3 letters).
func GenerateRandomPlate() string {
	plate := make([]byte, 0, 7)
	for i := 0; i < 4; i++ {
		plate = append(plate, digits[rand.Intn(len(digits))])
	}
	for i := 0; i < 3; i++ {
		plate = append(plate, upper[rand.Intn(len(upper))])
	}
	return string(plate)
}

var idLetters = []rune("abcdefghijklmnopqrstuvwxyz")

// GenerateRecordID builds the document-style ids used for assignment records.
func GenerateRecordID() string {
	id := make([]rune, 20)
	for i := range id {
		if rand.Intn(3) == 0 {
			id[i] = rune(digits[rand.Intn(len(digits))])
		} else {
			id[i] = idLetters[rand.Intn(len(idLetters))]
		}
	}
	return string(id)
}
