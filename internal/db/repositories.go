package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Records       *RecordRepository
	Verifications *VerificationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Records:       NewRecordRepository(database),
		Verifications: NewVerificationRepository(database),
	}
}
