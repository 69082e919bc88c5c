// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api exposes the deployment's records over a read-only JSON surface.
// Mutating operations are the program surface, not HTTP.
package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/api/restutil"
	"github.com/sunrise-stake/router/router"
	"github.com/sunrise-stake/router/sunrise"
	"github.com/sunrise-stake/router/telemetry"
)

type routerAPI struct {
	engine *router.Router
}

// New returns the http handler serving the read-only router surface.
func New(engine *router.Router) http.HandlerFunc {
	m := mux.NewRouter()
	(&routerAPI{engine}).mount(m, "/router")
	if h := telemetry.Handler(); h != nil {
		m.Path("/metrics").Handler(h)
	}
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		m.ServeHTTP(w, req)
	}
}

func (a *routerAPI) mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/deployment").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(a.handleGetDeployment))
	sub.Path("/report").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(a.handleGetReport))
	sub.Path("/locks/{owner}").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(a.handleGetLock))
	sub.Path("/pools/{index}").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(a.handleGetPool))
}

func (a *routerAPI) handleGetDeployment(w http.ResponseWriter, _ *http.Request) error {
	dep, err := a.engine.Deployment()
	if err != nil {
		return err
	}
	if dep == nil {
		return restutil.NotFound(errors.New("deployment not registered"))
	}
	marinadeMinted, blazeMinted, err := a.engine.MintedTotals()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertDeployment(dep, marinadeMinted, blazeMinted))
}

func (a *routerAPI) handleGetReport(w http.ResponseWriter, _ *http.Request) error {
	report, err := a.engine.EpochReport()
	if err != nil {
		return err
	}
	if report == nil {
		return restutil.NotFound(errors.New("epoch report not initialised"))
	}
	return restutil.WriteJSON(w, convertEpochReport(report))
}

func (a *routerAPI) handleGetLock(w http.ResponseWriter, req *http.Request) error {
	owner, err := sunrise.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "owner"))
	}
	account, err := a.engine.LockAccount(*owner)
	if err != nil {
		return err
	}
	if account == nil {
		return restutil.NotFound(errors.New("no lock position for owner"))
	}
	return restutil.WriteJSON(w, convertLockAccount(account))
}

func (a *routerAPI) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "index"))
	}
	entry, err := a.engine.RegisteredPool(index)
	if err != nil {
		return err
	}
	if entry == nil {
		return restutil.NotFound(errors.New("no pool at index"))
	}
	return restutil.WriteJSON(w, convertPoolEntry(index, entry))
}
