package user

import "gorm.io/gorm"

type Repository interface {
	GetUserByID(id uint64) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUsersByIDs(ids []uint64) ([]*User, error)
	CreateUser(user *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserByID(id uint64) (*User, error) {
	var user User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUsersByIDs(ids []uint64) ([]*User, error) {
	var users []*User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *repository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}
