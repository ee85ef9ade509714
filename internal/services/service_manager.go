package services

// ServiceManager groups the services the HTTP layer depends on
type ServiceManager interface {
	Session() SessionService
	Result() ResultService
	Export() ExportService
}

type serviceManager struct {
	session SessionService
	result  ResultService
	export  ExportService
}

func NewServiceManager(session SessionService, result ResultService, export ExportService) ServiceManager {
	return &serviceManager{
		session: session,
		result:  result,
		export:  export,
	}
}

func (m *serviceManager) Session() SessionService {
	return m.session
}

func (m *serviceManager) Result() ResultService {
	return m.result
}

func (m *serviceManager) Export() ExportService {
	return m.export
}
