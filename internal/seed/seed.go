package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mestral-events/opsboard/backend/internal/collections"
	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/interval"
	"github.com/mestral-events/opsboard/backend/internal/repository"
	"github.com/mestral-events/opsboard/backend/internal/utils"
)

var departmentLabels = []string{"Serveis", "Logística", "Cuina", "Producció"}

var meetingPoints = []string{
	"Magatzem central", "Finca Mas Roig", "Parador del Port",
	"Nau de Vilafranca", "Celler Gran Clos",
}

var vehicleTypes = []string{"furgoneta", "camió petit", "camió gran", "turisme"}

func randomDay() string {
	return time.Now().AddDate(0, 0, rand.Intn(60)).Format(interval.DateLayout)
}

func randomTime() string {
	return fmt.Sprintf("%02d:%02d", rand.Intn(24), []int{0, 15, 30, 45}[rand.Intn(4)])
}

func randomEventID() string {
	return fmt.Sprintf("EV%05d", rand.Intn(100000))
}

func randomLine(withVehicle bool) domain.ParticipantLine {
	line := domain.ParticipantLine{
		Name:         utils.GenerateRandomCatalanName(),
		MeetingPoint: meetingPoints[rand.Intn(len(meetingPoints))],
	}
	if withVehicle {
		line.Plate = utils.GenerateRandomPlate()
		line.VehicleType = vehicleTypes[rand.Intn(len(vehicleTypes))]
	}
	return line
}

func randomRecord(department string) *domain.AssignmentRecord {
	record := &domain.AssignmentRecord{
		ID:         utils.GenerateRecordID(),
		EventID:    randomEventID(),
		Department: department,
		StartDate:  randomDay(),
		StartTime:  fmt.Sprintf("%02d:00", 8+rand.Intn(8)),
		EndTime:    fmt.Sprintf("%02d:00", 16+rand.Intn(8)),
	}

	record.Responsible = domain.ParticipantLines{randomLine(false)}
	for i := 0; i < 1+rand.Intn(2); i++ {
		record.Drivers = append(record.Drivers, randomLine(true))
	}
	for i := 0; i < 2+rand.Intn(4); i++ {
		record.Workers = append(record.Workers, randomLine(false))
	}

	return record
}

func SeedUsers(repo *repository.Repository, n int, password string, emailDomain string) {
	cnt := 0
	for i := 0; i < n; i++ {
		department := departmentLabels[rand.Intn(len(departmentLabels))]
		user, err := utils.GenerateRandomUser(password, emailDomain, department)
		if err != nil {
			slog.Error("could not generate random user", "error", err)
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("could not insert user", "error", err)
			continue
		}

		cnt++
	}

	slog.Info("users seeded", "count", cnt)
}

func SeedRecords(repo *repository.Repository, resolver *collections.Resolver, n int) {
	cnt := 0
	for i := 0; i < n; i++ {
		department := departmentLabels[rand.Intn(len(departmentLabels))]
		collection, ok := resolver.Resolve(department)
		if !ok {
			slog.Error("department did not resolve", "department", department)
			continue
		}

		if err := repo.CreateAssignmentRecord(collection, randomRecord(department)); err != nil {
			slog.Error("could not insert record", "error", err)
			continue
		}

		cnt++
	}

	slog.Info("assignment records seeded", "count", cnt)
}

func SeedVehicleAssignments(repo *repository.Repository, n int) {
	statuses := []domain.VehicleAssignmentStatus{
		domain.VehicleStatusPending,
		domain.VehicleStatusConfirmed,
		domain.VehicleStatusAddedToTorns,
		domain.VehicleStatusCancelled,
	}

	cnt := 0
	for i := 0; i < n; i++ {
		startDate := randomDay()
		startTime := randomTime()
		endTime := randomTime()

		window, ok := interval.NewRange(startDate, startTime, "", endTime)
		if !ok {
			continue
		}

		assignment := &domain.VehicleAssignment{
			Plate:     utils.GenerateRandomPlate(),
			EventID:   randomEventID(),
			StartDate: startDate,
			StartTime: startTime,
			EndTime:   endTime,
			Status:    statuses[rand.Intn(len(statuses))],
			DayKeys:   interval.DayKeys(window),
		}

		if err := repo.CreateVehicleAssignment(assignment); err != nil {
			slog.Error("could not insert vehicle assignment", "error", err)
			continue
		}

		cnt++
	}

	slog.Info("vehicle assignments seeded", "count", cnt)
}
