// Package interpreter turns free-text Korean utterances into order
// mutations. It is a best-effort keyword interpreter, not an NLU
// system: intents are literal substring checks run as an ordered
// dispatch chain, and the first handler that produces a reply ends
// the turn.
package interpreter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ai-kiosk/api/internal/catalog"
	"github.com/ai-kiosk/api/internal/enum"
	"github.com/ai-kiosk/api/internal/order"
	"github.com/ai-kiosk/api/internal/payment"
)

// Interpreter processes one utterance at a time against an order
// snapshot. It holds no per-session state and is safe to share across
// sessions; the caller owns the snapshot round-trip.
type Interpreter struct {
	catalog  *catalog.Catalog
	links    payment.LinkGenerator
	now      func() time.Time
	matchers map[string][]*itemMatcher // per store id, longest name first
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the clock used for pickup times.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) { in.now = now }
}

// WithLinkGenerator overrides the payment-link seam.
func WithLinkGenerator(g payment.LinkGenerator) Option {
	return func(in *Interpreter) { in.links = g }
}

// New creates an Interpreter over the given catalog. Item matchers are
// compiled up front; the catalog is read-only after this point.
func New(c *catalog.Catalog, opts ...Option) *Interpreter {
	in := &Interpreter{
		catalog: c,
		links:   payment.NewDummyPayPal(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.matchers = make(map[string][]*itemMatcher)
	for _, s := range c.Stores() {
		store := s
		in.matchers[s.ID] = storeMatchers(&store)
	}
	return in
}

// turn carries the state of a single Process call through the handler
// chain.
type turn struct {
	in    *Interpreter
	lower string // lowercased utterance, never modified
	order *order.Order
	store *catalog.Store
	// selectionReply is the menu listing produced when this utterance
	// selected a store. It is held back so item extraction still gets
	// a chance to run on the same utterance, and returned only when no
	// later handler replied.
	selectionReply string
}

// handlerFunc inspects the turn and returns a reply, or "" to pass.
type handlerFunc func(*turn) string

// handlers is the pipeline, in strict priority order.
var handlers = []handlerFunc{
	(*turn).storeDirectory,
	(*turn).storeSelection,
	(*turn).menuDisplay,
	(*turn).itemExtraction,
	(*turn).flushSelection,
	(*turn).orderManagement,
	(*turn).payment,
	(*turn).statusTracking,
	(*turn).fallback,
}

// Process interprets one utterance against the current order snapshot
// and returns the reply plus the next snapshot. The input order is
// never mutated; a nil order means a fresh session. Process is total:
// any input yields some reply.
func (in *Interpreter) Process(message string, current *order.Order) (string, *order.Order) {
	if current == nil {
		current = order.New()
	}
	t := &turn{
		in:    in,
		lower: strings.ToLower(message),
		order: current.Clone(),
	}
	for _, h := range handlers {
		if reply := h(t); reply != "" {
			return reply, t.order
		}
	}
	// fallback always replies; kept for safety only.
	return "죄송합니다. 잘 이해하지 못했어요. 다시 말씀해주시겠어요?", t.order
}

// --- Handlers ---

// storeDirectory answers "which store / where" questions with the full
// store listing. Triggering here ends the turn before item extraction
// can run, even if the utterance happens to name a menu item.
func (t *turn) storeDirectory() string {
	if !strings.Contains(t.lower, "가게") {
		return ""
	}
	if !strings.Contains(t.lower, "어디") && !strings.Contains(t.lower, "어떤 가게") {
		return ""
	}
	stores := t.in.catalog.Stores()
	names := make([]string, len(stores))
	for i, s := range stores {
		names[i] = fmt.Sprintf("%s (%s)", s.Name, s.Distance)
	}
	return fmt.Sprintf("현재 %s 등이 있습니다. 어느 가게를 이용하시겠어요?", strings.Join(names, ", "))
}

// storeSelection resolves the target store. The store id is set at
// most once per order; later mentions of other stores are ignored.
// Never replies directly: a fresh selection parks its menu listing in
// selectionReply and lets the turn continue.
func (t *turn) storeSelection() string {
	if t.order.StoreID != nil {
		t.store = t.in.catalog.GetStore(*t.order.StoreID)
		return ""
	}
	s := t.in.catalog.FindStoreByName(t.lower)
	if s == nil {
		return ""
	}
	t.store = s
	id, name := s.ID, s.Name
	t.order.StoreID = &id
	t.order.StoreName = &name
	t.order.Status = enum.OrderStatusSelectingMenu
	t.selectionReply = fmt.Sprintf("%s을(를) 선택하셨습니다. 메뉴는 %s 입니다. 무엇을 주문하시겠어요?",
		s.Name, menuListing(s))
	return ""
}

func (t *turn) menuDisplay() string {
	if !strings.Contains(t.lower, "메뉴") {
		return ""
	}
	if t.store == nil {
		return "어떤 가게의 메뉴를 보고 싶으신가요?"
	}
	return fmt.Sprintf("%s의 메뉴는 %s 입니다. 무엇을 주문하시겠어요?", t.store.Name, menuListing(t.store))
}

// itemExtraction scans the utterance for menu items. Each matcher
// repeatedly consumes its leftmost occurrence from a shrinking working
// copy, so "참치김밥 하나랑 참치김밥 둘" yields two separate hits that
// merge into one line. Options are detected against the original
// utterance, not the working copy.
func (t *turn) itemExtraction() string {
	switch t.order.Status {
	case enum.OrderStatusPending, enum.OrderStatusSelectingMenu, enum.OrderStatusOrdered:
	default:
		return ""
	}
	if t.store == nil {
		return ""
	}

	working := t.lower
	var added []string
	for _, m := range t.in.matchers[t.store.ID] {
		for {
			qty, rest, ok := m.next(working)
			if !ok {
				break
			}
			working = rest

			opts := []order.Option{}
			for _, o := range m.item.Options {
				if strings.Contains(t.lower, strings.ToLower(o.Name)) {
					opts = append(opts, order.Option{Name: o.Name, Price: o.Price})
				}
			}
			t.order.AddItem(order.LineItem{
				ItemID:   m.item.ID,
				Name:     m.item.Name,
				Quantity: qty,
				Price:    m.item.Price,
				Options:  opts,
			})
			added = append(added, fmt.Sprintf("%s%s %d개", m.item.Name, optionsText(opts), qty))
		}
	}
	if len(added) == 0 {
		return ""
	}

	t.order.RecalculateTotal()
	t.order.Status = enum.OrderStatusOrdered
	return fmt.Sprintf("%s 주문 목록에 추가했습니다. 현재 총 %d원입니다. 더 주문하시겠어요? (주문 확인, 결제, 취소 가능)",
		strings.Join(added, ", "), t.order.TotalPrice)
}

// flushSelection returns the parked store-selection reply when the
// rest of the utterance produced nothing to order.
func (t *turn) flushSelection() string {
	return t.selectionReply
}

func (t *turn) orderManagement() string {
	if strings.Contains(t.lower, "주문 확인") || strings.Contains(t.lower, "내 주문") {
		if len(t.order.Items) == 0 {
			return "현재 주문하신 내역이 없습니다."
		}
		lines := make([]string, len(t.order.Items))
		for i, li := range t.order.Items {
			lines[i] = fmt.Sprintf("%s%s %d개", li.Name, optionsText(li.Options), li.Quantity)
		}
		return fmt.Sprintf("현재 주문하신 내역은 %s이며, 총 %d원입니다. 더 주문하시겠어요? (결제, 취소 가능)",
			strings.Join(lines, ", "), t.order.TotalPrice)
	}

	if strings.Contains(t.lower, "주문 취소") {
		// The only non-monotonic transition: everything resets.
		t.order = order.New()
		return "주문이 취소되었습니다. 무엇을 도와드릴까요?"
	}

	if strings.Contains(t.lower, "빼줘") || strings.Contains(t.lower, "삭제") {
		for _, li := range t.order.Items {
			if !strings.Contains(t.lower, strings.ToLower(li.Name)) {
				continue
			}
			t.order.RemoveItem(li.ItemID)
			t.order.RecalculateTotal()
			return fmt.Sprintf("%s을(를) 주문 목록에서 제외했습니다. 현재 총 %d원입니다. 더 주문하시겠어요?",
				li.Name, t.order.TotalPrice)
		}
		return "어떤 항목을 빼드릴까요?"
	}

	return ""
}

// paymentMethods in fixed match order: first keyword found wins.
var paymentMethods = []struct {
	keyword string
	token   string
	label   string
}{
	{"카드", enum.PaymentMethodCard, "카드"},
	{"현금", enum.PaymentMethodCash, "현금"},
	{"페이팔", enum.PaymentMethodPayPal, "페이팔"},
	{"paypal", enum.PaymentMethodPayPal, "페이팔"},
}

func (t *turn) payment() string {
	if strings.Contains(t.lower, "결제") && t.order.Status == enum.OrderStatusOrdered {
		if len(t.order.Items) == 0 {
			return "주문하신 내역이 없어 결제를 진행할 수 없습니다."
		}
		t.order.Status = enum.OrderStatusPaymentRequested
		return fmt.Sprintf("총 %d원입니다. 어떤 방식으로 결제하시겠어요? (카드, 현금, 페이팔)", t.order.TotalPrice)
	}

	if t.order.Status != enum.OrderStatusPaymentRequested {
		return ""
	}
	for _, m := range paymentMethods {
		if !strings.Contains(t.lower, m.keyword) {
			continue
		}
		pickup := generatePickupTime(t.in.now())
		token := m.token
		t.order.PaymentMethod = &token
		t.order.Status = enum.OrderStatusCompleted
		t.order.PickupTime = &pickup.Display
		t.order.PickupTimeDate = &pickup.Instant
		if m.token == enum.PaymentMethodPayPal {
			link := t.in.links.PaymentLink(t.order.TotalPrice)
			return fmt.Sprintf("페이팔 결제 링크를 생성했습니다: %s. 픽업 시간은 %s입니다.", link, pickup.Display)
		}
		return fmt.Sprintf("%s 결제가 완료되었습니다. 픽업 시간은 %s입니다.", m.label, pickup.Display)
	}
	// No known method keyword: leave status at payment_requested.
	return ""
}

func (t *turn) statusTracking() string {
	if !strings.Contains(t.lower, "언제 나와") && !strings.Contains(t.lower, "픽업 시간") {
		return ""
	}
	switch {
	case t.order.Status == enum.OrderStatusCompleted && t.order.PickupTime != nil:
		return fmt.Sprintf("주문하신 상품은 %s에 픽업 가능합니다.", *t.order.PickupTime)
	case t.order.Status == enum.OrderStatusOrdered || t.order.Status == enum.OrderStatusPaymentRequested:
		return "아직 결제가 완료되지 않았습니다. 결제를 먼저 진행해주세요."
	}
	return "현재 진행 중인 주문이 없습니다. 무엇을 도와드릴까요?"
}

func (t *turn) fallback() string {
	if t.order.Status == enum.OrderStatusPending {
		return "안녕하세요! AI 키오스크입니다. 무엇을 도와드릴까요? (예: 근처 가게, 메뉴 보여줘)"
	}
	return "죄송합니다. 잘 이해하지 못했어요. 다시 말씀해주시겠어요?"
}

// --- Helpers ---

func menuListing(s *catalog.Store) string {
	items := make([]string, len(s.Menu))
	for i, item := range s.Menu {
		items[i] = fmt.Sprintf("%s (%d원)", item.Name, item.Price)
	}
	return strings.Join(items, ", ")
}

func optionsText(opts []order.Option) string {
	if len(opts) == 0 {
		return ""
	}
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return fmt.Sprintf(" (%s)", strings.Join(names, ", "))
}
