package user

import "time"

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	// Currency is the ISO 4217 code used as a display tag on amounts.
	// Amounts are never converted between currencies.
	Currency     string
	Timezone     string
	WeekFirstDay time.Weekday
}
