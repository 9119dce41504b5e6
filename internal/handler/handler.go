package handler

import (
	"errors"

	"gamecenter/internal/model"
	"gamecenter/internal/repository"
	"gamecenter/internal/service"
	"gamecenter/pkg/logger"
	"gamecenter/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	memberService      *service.MemberService
	gameService        *service.GameService
	ledgerService      *service.LedgerService
	transactionService *service.TransactionService
	reportService      *service.ReportService
	log                *logger.Logger
}

// Services 组装好的业务服务
type Services struct {
	Members      *service.MemberService
	Games        *service.GameService
	Ledger       *service.LedgerService
	Transactions *service.TransactionService
	Reports      *service.ReportService
}

func NewHandler(svc Services, log *logger.Logger) *Handler {
	return &Handler{
		memberService:      svc.Members,
		gameService:        svc.Games,
		ledgerService:      svc.Ledger,
		transactionService: svc.Transactions,
		reportService:      svc.Reports,
		log:                log.With("component", "Handler"),
	}
}

// fail 记录不存在返回 404；其余错误只记日志，对外返回固定文案
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrRecordNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	h.log.Error("请求处理失败", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	response.ServerError(c, "服务器内部错误")
}

// ============================================================
// 会员
// ============================================================

type MemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *MemberRequest) toService() *service.MemberRequest {
	return &service.MemberRequest{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// ListMembers GET /api/v1/members
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, members)
}

// GetMember GET /api/v1/members/:id
func (h *Handler) GetMember(c *gin.Context) {
	member, err := h.memberService.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, member)
}

// CreateMember POST /api/v1/members
func (h *Handler) CreateMember(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), req.toService())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, member)
}

// UpdateMember PUT /api/v1/members/:id
func (h *Handler) UpdateMember(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), c.Param("id"), req.toService())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, member)
}

// ============================================================
// 游戏
// ============================================================

type GameRequest struct {
	Name           string  `json:"name" binding:"required"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
	MinPlayers     int     `json:"minPlayers"`
	MaxPlayers     int     `json:"maxPlayers"`
	PlayerMultiple int     `json:"playerMultiple"`
	Status         string  `json:"status"`
	Duration       string  `json:"duration"`
}

func (r *GameRequest) toService() *service.GameRequest {
	return &service.GameRequest{
		Name:           r.Name,
		Price:          r.Price,
		Description:    r.Description,
		MinPlayers:     r.MinPlayers,
		MaxPlayers:     r.MaxPlayers,
		PlayerMultiple: r.PlayerMultiple,
		Status:         r.Status,
		Duration:       r.Duration,
	}
}

// ListGames GET /api/v1/games
func (h *Handler) ListGames(c *gin.Context) {
	games, err := h.gameService.ListGames(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, games)
}

// CreateGame POST /api/v1/games
func (h *Handler) CreateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), req.toService())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, game)
}

// UpdateGame PUT /api/v1/games/:id
func (h *Handler) UpdateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), c.Param("id"), req.toService())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, game)
}

// DeleteGame DELETE /api/v1/games/:id
func (h *Handler) DeleteGame(c *gin.Context) {
	if err := h.gameService.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// ============================================================
// 充值：所有写入都经过账本服务，保证日汇总一致
// ============================================================

// RechargeRequest 金额允许为负数和 0
type RechargeRequest struct {
	MemberName string  `json:"memberName"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date" binding:"required"`
}

func (r *RechargeRequest) toService() (*service.RechargeRequest, error) {
	date, err := model.ParseTimestamp(r.Date)
	if err != nil {
		return nil, err
	}
	return &service.RechargeRequest{MemberName: r.MemberName, Amount: r.Amount, Date: date}, nil
}

// ListRecharges GET /api/v1/recharges
func (h *Handler) ListRecharges(c *gin.Context) {
	recharges, err := h.ledgerService.ListRecharges(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, recharges)
}

// CreateRecharge POST /api/v1/recharges
func (h *Handler) CreateRecharge(c *gin.Context) {
	var req RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}
	serviceReq, err := req.toService()
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	recharge, err := h.ledgerService.RecordRecharge(c.Request.Context(), serviceReq)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, recharge)
}

// UpdateRecharge PUT /api/v1/recharges/:id
func (h *Handler) UpdateRecharge(c *gin.Context) {
	var req RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}
	serviceReq, err := req.toService()
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	recharge, err := h.ledgerService.ReviseRecharge(c.Request.Context(), c.Param("id"), serviceReq)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, recharge)
}

// ============================================================
// 消费记录
// ============================================================

// TransactionRequest 修改时 memberName / gameName 会被忽略，按 ID 重新解析
type TransactionRequest struct {
	MemberID   string  `json:"memberId"`
	MemberName string  `json:"memberName"`
	GameID     string  `json:"gameId"`
	GameName   string  `json:"gameName"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date" binding:"required"`
}

func (r *TransactionRequest) toService() (*service.TransactionRequest, error) {
	date, err := model.ParseTimestamp(r.Date)
	if err != nil {
		return nil, err
	}
	return &service.TransactionRequest{
		MemberID:   r.MemberID,
		MemberName: r.MemberName,
		GameID:     r.GameID,
		GameName:   r.GameName,
		Amount:     r.Amount,
		Date:       date,
	}, nil
}

// ListTransactions GET /api/v1/transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	transactions, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, transactions)
}

// CreateTransaction POST /api/v1/transactions
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}
	serviceReq, err := req.toService()
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	trans, err := h.transactionService.CreateTransaction(c.Request.Context(), serviceReq)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, trans)
}

// UpdateTransaction PUT /api/v1/transactions/:id
func (h *Handler) UpdateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}
	serviceReq, err := req.toService()
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	trans, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("id"), serviceReq)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, trans)
}

// ============================================================
// 日汇总（只读）
// ============================================================

// ListCollections GET /api/v1/collections
func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.reportService.ListCollections(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, collections)
}

// GetCollection GET /api/v1/collections/date/:date
func (h *Handler) GetCollection(c *gin.Context) {
	coll, err := h.reportService.GetCollection(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, coll)
}

// TotalRecharges GET /api/v1/collections/total-recharges?date=2024-01-05
//
// date 是时间戳前缀，必须携带，显式传空串时统计全部充值。
// 直接扫描充值记录，不读日汇总表
func (h *Handler) TotalRecharges(c *gin.Context) {
	prefix, ok := c.GetQuery("date")
	if !ok {
		response.ParamError(c, "date 参数不能为空")
		return
	}

	total, err := h.reportService.TotalRechargesOn(c.Request.Context(), prefix)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"date":           prefix,
		"totalRecharges": total,
	})
}
