package service

import (
	"clubbot/pkg/logger"
	"clubbot/storage"
)

type IServiceManager interface {
	User() UserService
	Admin() AdminService
	Visit() VisitService
}

type service struct {
	userService  UserService
	adminService AdminService
	visitService VisitService
}

func New(stg storage.IStorage, log logger.ILogger) IServiceManager {
	return &service{
		userService:  NewUserService(stg, log),
		adminService: NewAdminService(stg, log),
		visitService: NewVisitService(stg, log),
	}
}

func (s *service) User() UserService {
	return s.userService
}

func (s *service) Admin() AdminService {
	return s.adminService
}

func (s *service) Visit() VisitService {
	return s.visitService
}
