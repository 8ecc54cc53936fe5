package server

import (
	"net/http"

	"todo-service/handlers"
	"todo-service/services"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/httpserver"
)

// Services bundles what the router dispatches to
type Services struct {
	Users services.UserService
	Lists services.ToDoListService
	Tasks services.TaskService
}

// routes registers httpserver-style route declarations on mux. AuthType
// "none" routes are public, everything else goes behind Basic auth.
type routes struct {
	public    *mux.Router
	protected *mux.Router
}

func (rt routes) register(route httpserver.Route, h httpserver.HandlerFunc) {
	target := rt.protected
	if route.AuthType == "none" {
		target = rt.public
	}
	target.Handle(route.Path, handlers.Adapt(h)).Methods(route.Method).Name(route.Name)
}

// NewRouter registers every route. All /api routes except registration
// require Basic credentials, including paths that match no route.
func NewRouter(db handlers.Pinger, svc Services) http.Handler {
	users := handlers.NewUserHandler(svc.Users)
	lists := handlers.NewToDoListHandler(svc.Lists)
	tasks := handlers.NewTaskHandler(svc.Tasks)

	r := mux.NewRouter()
	r.Use(requestID, recoverer, routeInfo)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed)
	})

	rt := routes{public: r}

	rt.register(httpserver.Route{Name: "HealthCheck", Method: http.MethodGet, Path: "/health", AuthType: "none"}, handlers.Health(db))
	rt.register(httpserver.Route{Name: "RegisterUser", Method: http.MethodPost, Path: "/api/user/register", AuthType: "none"}, users.Register)

	// Registered after the public routes so they match first
	rt.protected = r.NewRoute().Subrouter()
	rt.protected.Use(handlers.BasicAuth(svc.Users))

	rt.register(httpserver.Route{Name: "GetUser", Method: http.MethodGet, Path: "/api/user/{username}", AuthType: "basic"}, users.GetUser)
	rt.register(httpserver.Route{Name: "DeleteUser", Method: http.MethodDelete, Path: "/api/user/{username}", AuthType: "basic"}, users.DeleteUser)
	rt.register(httpserver.Route{Name: "ChangeUsername", Method: http.MethodPatch, Path: "/api/user/{username}/username", AuthType: "basic"}, users.ChangeUsername)
	rt.register(httpserver.Route{Name: "ChangePassword", Method: http.MethodPatch, Path: "/api/user/{username}/password", AuthType: "basic"}, users.ChangePassword)
	rt.register(httpserver.Route{Name: "ChangeEmail", Method: http.MethodPatch, Path: "/api/user/{username}/email", AuthType: "basic"}, users.ChangeEmail)

	// /list/all must be registered before /list/{id}
	rt.register(httpserver.Route{Name: "GetAllLists", Method: http.MethodGet, Path: "/api/list/all", AuthType: "basic"}, lists.GetAllLists)
	rt.register(httpserver.Route{Name: "CreateList", Method: http.MethodPost, Path: "/api/list", AuthType: "basic"}, lists.CreateList)
	rt.register(httpserver.Route{Name: "GetList", Method: http.MethodGet, Path: "/api/list/{id:[0-9]+}", AuthType: "basic"}, lists.GetList)
	rt.register(httpserver.Route{Name: "UpdateList", Method: http.MethodPut, Path: "/api/list/{id:[0-9]+}", AuthType: "basic"}, lists.UpdateList)
	rt.register(httpserver.Route{Name: "DeleteList", Method: http.MethodDelete, Path: "/api/list/{id:[0-9]+}", AuthType: "basic"}, lists.DeleteList)
	rt.register(httpserver.Route{Name: "SetListActive", Method: http.MethodPatch, Path: "/api/list/{id:[0-9]+}/active/{active}", AuthType: "basic"}, lists.SetActive)
	rt.register(httpserver.Route{Name: "AddTask", Method: http.MethodPatch, Path: "/api/list/{id:[0-9]+}/task/add", AuthType: "basic"}, lists.AddTask)
	rt.register(httpserver.Route{Name: "RemoveTask", Method: http.MethodPatch, Path: "/api/list/{listId:[0-9]+}/task/remove/{taskId:[0-9]+}", AuthType: "basic"}, lists.RemoveTask)

	rt.register(httpserver.Route{Name: "GetTask", Method: http.MethodGet, Path: "/api/task/{id:[0-9]+}", AuthType: "basic"}, tasks.GetTask)
	rt.register(httpserver.Route{Name: "UpdateTask", Method: http.MethodPatch, Path: "/api/task/{id:[0-9]+}", AuthType: "basic"}, tasks.UpdateTask)
	rt.register(httpserver.Route{Name: "CompleteTask", Method: http.MethodPatch, Path: "/api/task/{id:[0-9]+}/complete", AuthType: "basic"}, tasks.CompleteTask)

	// Unknown /api paths answer 404 only to authenticated callers
	rt.protected.PathPrefix("/api/").Name("NotFound").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound)
	})

	return r
}

func writeStatus(w http.ResponseWriter, status int) {
	handlers.WriteError(w, status, http.StatusText(status))
}
