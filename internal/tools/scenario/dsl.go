package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const (
	scenarioTypeName = "scenario"
	contactTypeName  = "contact"
)

// Scenario is a named, ordered list of steps loaded from a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted action or expectation.
type Step struct {
	Kind string
	Args map[string]any
}

// contact chains conversation steps against one directory user.
type contact struct {
	scenario *Scenario
	userID   string
}

// LoadScenarioFromFile runs a Lua script and returns the Scenario it builds.
// The script must return the value created by Scenario.new.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerLuaTypes(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	registerType(state, scenarioTypeName, scenarioMethods)
	registerType(state, contactTypeName, contactMethods)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

func registerType(state *lua.State, name string, methods []lua.RegistryFunction) {
	lua.NewMetaTable(state, name)
	state.NewTable()
	lua.SetFunctions(state, methods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "user", Function: scenarioUser},
	{Name: "login", Function: scenarioLogin},
	{Name: "logout", Function: scenarioLogout},
	{Name: "at", Function: scenarioAt},
	{Name: "advance", Function: scenarioAdvance},
	{Name: "set_mode", Function: scenarioSetMode},
	{Name: "deactivate", Function: scenarioDeactivate},
	{Name: "chat", Function: scenarioChat},
	{Name: "send", Function: scenarioSend},
	{Name: "receive", Function: scenarioReceive},
	{Name: "rate", Function: scenarioRate},
	{Name: "review", Function: scenarioReview},
	{Name: "select", Function: scenarioSelect},
	{Name: "update_selections", Function: scenarioUpdateSelections},
	{Name: "delete_chats", Function: scenarioDeleteChats},
	{Name: "expect_mode", Function: scenarioExpectMode},
	{Name: "expect_approval", Function: scenarioExpectApproval},
	{Name: "expect_reviews", Function: scenarioExpectReviews},
	{Name: "expect_chat", Function: scenarioExpectChat},
	{Name: "expect_match", Function: scenarioExpectMatch},
	{Name: "expect_notice", Function: scenarioExpectNotice},
}

var contactMethods = []lua.RegistryFunction{
	{Name: "send", Function: contactSend},
	{Name: "receive", Function: contactReceive},
	{Name: "rate", Function: contactRate},
	{Name: "review", Function: contactReview},
	{Name: "expect", Function: contactExpect},
}

func scenarioUser(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "user", tableToMap(state, 2))
	return 0
}

func scenarioLogin(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"name": lua.OptString(state, 2, "Scenario Runner")}
	appendStep(scenario, "login", withOptions(state, 3, data))
	return 0
}

func scenarioLogout(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "logout", nil)
	return 0
}

func scenarioAt(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "at", map[string]any{"time": lua.CheckString(state, 2)})
	return 0
}

// scenarioAdvance accepts seconds or a Go duration string.
func scenarioAdvance(state *lua.State) int {
	scenario := checkScenario(state)
	var by any
	if state.TypeOf(2) == lua.TypeNumber {
		by = normalizeNumber(lua.CheckNumber(state, 2))
	} else {
		by = lua.CheckString(state, 2)
	}
	appendStep(scenario, "advance", map[string]any{"by": by})
	return 0
}

func scenarioSetMode(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"mode": lua.CheckString(state, 2)}
	appendStep(scenario, "set_mode", withOptions(state, 3, data))
	return 0
}

func scenarioDeactivate(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "deactivate", optionalTable(state, 2))
	return 0
}

func scenarioChat(state *lua.State) int {
	scenario := checkScenario(state)
	userID := lua.CheckString(state, 2)
	appendStep(scenario, "start_chat", withOptions(state, 3, map[string]any{"user": userID}))
	state.PushUserData(&contact{scenario: scenario, userID: userID})
	lua.SetMetaTableNamed(state, contactTypeName)
	return 1
}

func scenarioSend(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2), "text": lua.CheckString(state, 3)}
	appendStep(scenario, "send", withOptions(state, 4, data))
	return 0
}

func scenarioReceive(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2), "text": lua.CheckString(state, 3)}
	appendStep(scenario, "receive", withOptions(state, 4, data))
	return 0
}

func scenarioRate(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2)}
	appendStep(scenario, "rate", withOptions(state, 3, data))
	return 0
}

func scenarioReview(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2), "stars": lua.CheckInteger(state, 3)}
	appendStep(scenario, "review", withOptions(state, 4, data))
	return 0
}

func scenarioSelect(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "select", map[string]any{"selections": optionalList(state, 2)})
	return 0
}

func scenarioUpdateSelections(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "update_selections", map[string]any{"selections": optionalList(state, 2)})
	return 0
}

func scenarioDeleteChats(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "delete_chats", nil)
	return 0
}

func scenarioExpectMode(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2)}
	appendStep(scenario, "expect_mode", withOptions(state, 3, data))
	return 0
}

func scenarioExpectApproval(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2), "value": lua.CheckInteger(state, 3)}
	appendStep(scenario, "expect_approval", data)
	return 0
}

func scenarioExpectReviews(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2)}
	appendStep(scenario, "expect_reviews", withOptions(state, 3, data))
	return 0
}

func scenarioExpectChat(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2)}
	appendStep(scenario, "expect_chat", withOptions(state, 3, data))
	return 0
}

func scenarioExpectMatch(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"user": lua.CheckString(state, 2), "percentage": lua.CheckInteger(state, 3)}
	appendStep(scenario, "expect_match", data)
	return 0
}

func scenarioExpectNotice(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"contains": lua.CheckString(state, 2)}
	appendStep(scenario, "expect_notice", withOptions(state, 3, data))
	return 0
}

func contactSend(state *lua.State) int {
	c := checkContact(state)
	data := map[string]any{"user": c.userID, "text": lua.CheckString(state, 2)}
	appendStep(c.scenario, "send", withOptions(state, 3, data))
	return pushSelf(state)
}

func contactReceive(state *lua.State) int {
	c := checkContact(state)
	data := map[string]any{"user": c.userID, "text": lua.CheckString(state, 2)}
	appendStep(c.scenario, "receive", withOptions(state, 3, data))
	return pushSelf(state)
}

func contactRate(state *lua.State) int {
	c := checkContact(state)
	appendStep(c.scenario, "rate", withOptions(state, 2, map[string]any{"user": c.userID}))
	return pushSelf(state)
}

func contactReview(state *lua.State) int {
	c := checkContact(state)
	data := map[string]any{"user": c.userID, "stars": lua.CheckInteger(state, 2)}
	appendStep(c.scenario, "review", withOptions(state, 3, data))
	return pushSelf(state)
}

func contactExpect(state *lua.State) int {
	c := checkContact(state)
	appendStep(c.scenario, "expect_chat", withOptions(state, 2, map[string]any{"user": c.userID}))
	return pushSelf(state)
}

func pushSelf(state *lua.State) int {
	state.PushValue(1)
	return 1
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func checkContact(state *lua.State) *contact {
	ud := lua.CheckUserData(state, 1, contactTypeName)
	if c, ok := ud.(*contact); ok && c != nil {
		return c
	}
	lua.ArgumentError(state, 1, "contact expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) int {
	if scenario == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
	return len(scenario.Steps) - 1
}

// withOptions merges an optional trailing table into data. Positional
// arguments win over table keys with the same name.
func withOptions(state *lua.State, index int, data map[string]any) map[string]any {
	opts := optionalTable(state, index)
	for key, value := range data {
		opts[key] = value
	}
	return opts
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func optionalList(state *lua.State, index int) []any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return []any{}
	}
	if list, ok := tableToGo(state, index).([]any); ok {
		return list
	}
	return []any{}
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns a []any for sequence tables and a map otherwise.
func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
