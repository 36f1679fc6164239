package repository

import (
	bookingRepo "winetrail/database/repository/booking"
	userRepo "winetrail/database/repository/user"
	wineryRepo "winetrail/database/repository/winery"
)

// Re-export the WineryRepository interface and constructors.
type WineryRepository = wineryRepo.WineryRepository

var (
	NewMongoWineryRepo = wineryRepo.NewMongoWineryRepo
	NewCachedCatalog   = wineryRepo.NewCachedCatalog
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

type BookingScope = bookingRepo.Scope

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo
