package services

// ServiceContainer holds instances of all the application services.
// It is built once at process start and passed to the handlers and the scheduler.
type ServiceContainer struct {
	Goat     GoatSvcFacade
	Checkin  CheckinSvcFacade
	Calendar CalendarSvc
	Auth     AuthGateSvc
	Export   ExportSvc
}
