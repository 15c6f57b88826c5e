package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/prog6212/cmcs/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
}

var digits = "0123456789"

// Romanize converts Chinese characters to a capitalised pinyin word, e.g.
// "小明" becomes "Xiaoming".
func Romanize(chinese string) string {
	word := strings.Join(pinyin.LazyConvert(chinese, nil), "")
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// GenerateRandomName returns a romanized given name and surname.
func GenerateRandomName() (string, string) {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return Romanize(name), Romanize(surname)
}

// GenerateEmailLocalPart builds "name.surname" followed by up to three digits
// so that repeated names still yield distinct addresses most of the time.
func GenerateEmailLocalPart(name, surname string) string {
	local := strings.ToLower(name) + "." + strings.ToLower(surname)

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}
	return local
}

// GenerateRandomHourlyRate picks a rate in steps of R50 within the allowed
// lecturer range.
func GenerateRandomHourlyRate() float64 {
	steps := (domain.MaxHourlyRate - domain.MinHourlyRate) / 50
	return float64(domain.MinHourlyRate + rand.Intn(steps+1)*50)
}

func GenerateRandomLecturer(password string, emailDomainName string) (*domain.User, error) {
	name, surname := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Surname:      surname,
		Email:        GenerateEmailLocalPart(name, surname) + "@" + emailDomainName,
		HourlyRate:   GenerateRandomHourlyRate(),
		Role:         domain.RoleLecturer,
		PasswordHash: string(passwordHash),
	}

	return user, nil
}

// GenerateRandomClaimDraft drafts a claim for one of the six months before now.
func GenerateRandomClaimDraft(lecturerID int64, now time.Time) domain.ClaimDraft {
	month := now.AddDate(0, -rand.Intn(6), 0)
	return domain.ClaimDraft{
		LecturerID: lecturerID,
		TotalHours: float64(rand.Intn(domain.MaxClaimHours-domain.MinClaimHours+1) + domain.MinClaimHours),
		Month:      month.Format("2006-01"),
		Notes:      fmt.Sprintf("Generated claim %s", GenerateRandomID(3, 3)),
	}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(52)]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}
