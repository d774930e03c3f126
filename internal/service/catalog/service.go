package catalog

// Service сервис справочников парка: активности, категории, сотрудники и билеты
type Service struct {
	activityRepo ActivityRepository
	categoryRepo CategoryRepository
	staffRepo    StaffRepository
	ticketRepo   TicketRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	activityRepo ActivityRepository,
	categoryRepo CategoryRepository,
	staffRepo StaffRepository,
	ticketRepo TicketRepository,
	logger Logger,
) *Service {
	return &Service{
		activityRepo: activityRepo,
		categoryRepo: categoryRepo,
		staffRepo:    staffRepo,
		ticketRepo:   ticketRepo,
		logger:       logger,
	}
}
