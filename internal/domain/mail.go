package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AssignmentNoticeMailData struct {
	FullName   string `json:"fullName"`
	EventID    string `json:"eventID"`
	Department string `json:"department"`
	StartDate  string `json:"startDate"`
	StartTime  string `json:"startTime"`
	EndDate    string `json:"endDate"`
	EndTime    string `json:"endTime"`
}

type ConflictAlertMailData struct {
	Plate    string `json:"plate"`
	Source   string `json:"source"`
	RecordID string `json:"recordID"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Status   string `json:"status"`
}
