package camtparser

import (
	"strconv"
	"strings"

	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/dateutils"
	"fjacquet/camt-export/internal/models"
	"fjacquet/camt-export/internal/parsererror"
	"fjacquet/camt-export/internal/xmlutils"

	"gopkg.in/xmlpath.v2"
)

// Relative paths used by the extraction functions. All of them resolve
// against a context node, never the document root.
var (
	pathID        = xmlpath.MustCompile("Id")
	pathCreDtTm   = xmlpath.MustCompile("CreDtTm")
	pathAcct      = xmlpath.MustCompile("Acct")
	pathBal       = xmlpath.MustCompile("Bal")
	pathNtry      = xmlpath.MustCompile("Ntry")
	pathMsgID     = xmlpath.MustCompile("MsgId")
	pathMsgRcptNm = xmlpath.MustCompile("MsgRcpt/Nm")

	pathNm      = xmlpath.MustCompile("Nm")
	pathCcy     = xmlpath.MustCompile("Ccy")
	pathSvcr    = xmlpath.MustCompile("Svcr")
	pathOthrID  = xmlpath.MustCompile("Othr/Id")
	pathCcyAttr = xmlpath.MustCompile("@Ccy")

	pathFinInstnBIC   = xmlpath.MustCompile("FinInstnId/BIC")
	pathFinInstnBICFI = xmlpath.MustCompile("FinInstnId/BICFI")
	pathFinInstnNm    = xmlpath.MustCompile("FinInstnId/Nm")

	// Party details are nested one level deeper in newer schema years
	// (Pty/Agt wrappers), so these search the whole subtree.
	pathAnyNm    = xmlpath.MustCompile(".//Nm")
	pathAnyIBAN  = xmlpath.MustCompile(".//IBAN")
	pathAnyBIC   = xmlpath.MustCompile(".//BIC")
	pathAnyBICFI = xmlpath.MustCompile(".//BICFI")

	pathAmt       = xmlpath.MustCompile("Amt")
	pathCdtDbtInd = xmlpath.MustCompile("CdtDbtInd")
	pathDt        = xmlpath.MustCompile("Dt")
	pathAnyDt     = xmlpath.MustCompile(".//Dt")
	pathAnyDtTm   = xmlpath.MustCompile(".//DtTm")

	pathBookgDt     = xmlpath.MustCompile("BookgDt")
	pathValDt       = xmlpath.MustCompile("ValDt")
	pathNtryRef     = xmlpath.MustCompile("NtryRef")
	pathSts         = xmlpath.MustCompile("Sts")
	pathRvslInd     = xmlpath.MustCompile("RvslInd")
	pathAcctSvcrRef = xmlpath.MustCompile("AcctSvcrRef")
	pathTxDtls      = xmlpath.MustCompile("NtryDtls/TxDtls")

	pathRefs       = xmlpath.MustCompile("Refs")
	pathEndToEndID = xmlpath.MustCompile("EndToEndId")
	pathTxID       = xmlpath.MustCompile("TxId")
	pathMndtID     = xmlpath.MustCompile("MndtId")

	pathBkTxCd        = xmlpath.MustCompile("BkTxCd")
	pathDomnCd        = xmlpath.MustCompile("Domn/Cd")
	pathDomnFmlyCd    = xmlpath.MustCompile("Domn/Fmly/Cd")
	pathDomnSubFmlyCd = xmlpath.MustCompile("Domn/Fmly/SubFmlyCd")
	pathPrtry         = xmlpath.MustCompile("Prtry")
	pathCd            = xmlpath.MustCompile("Cd")
	pathIssr          = xmlpath.MustCompile("Issr")
	pathAnyChild      = xmlpath.MustCompile("*")
	pathPrtryBkTxCd   = xmlpath.MustCompile("PrtryBkTxCd")

	pathRltdPties  = xmlpath.MustCompile("RltdPties")
	pathDbtr       = xmlpath.MustCompile("Dbtr")
	pathDbtrAcctID = xmlpath.MustCompile("DbtrAcct/Id")
	pathUltmtDbtr  = xmlpath.MustCompile("UltmtDbtr")
	pathCdtr       = xmlpath.MustCompile("Cdtr")
	pathCdtrAcctID = xmlpath.MustCompile("CdtrAcct/Id")
	pathUltmtCdtr  = xmlpath.MustCompile("UltmtCdtr")

	pathRltdAgts = xmlpath.MustCompile("RltdAgts")
	pathDbtrAgt  = xmlpath.MustCompile("DbtrAgt")
	pathCdtrAgt  = xmlpath.MustCompile("CdtrAgt")

	pathRmtInf        = xmlpath.MustCompile("RmtInf")
	pathUstrd         = xmlpath.MustCompile("Ustrd")
	pathStrd          = xmlpath.MustCompile("Strd")
	pathAnyRefTp      = xmlpath.MustCompile(".//RefTp")
	pathAnyCd         = xmlpath.MustCompile(".//Cd")
	pathAnyPrtry      = xmlpath.MustCompile(".//Prtry")
	pathAnyCdtrRefInf = xmlpath.MustCompile(".//CdtrRefInf")
	pathRef           = xmlpath.MustCompile("Ref")
	pathAddtlRmtInf   = xmlpath.MustCompile("AddtlRmtInf")

	pathPurp = xmlpath.MustCompile("Purp")

	pathChrgs             = xmlpath.MustCompile("Chrgs")
	pathTtlChrgsAndTaxAmt = xmlpath.MustCompile("TtlChrgsAndTaxAmt")
	pathRcrd              = xmlpath.MustCompile("Rcrd")
	pathAgt               = xmlpath.MustCompile("Agt")
	pathChrgInclInd       = xmlpath.MustCompile("ChrgInclInd")

	pathAddtlTxInf = xmlpath.MustCompile("AddtlTxInf")

	pathAmtDtls       = xmlpath.MustCompile("AmtDtls")
	pathAmtDtlsTxAmt  = xmlpath.MustCompile("AmtDtls/TxAmt/Amt")
	pathTxAmtAmt      = xmlpath.MustCompile("TxAmt/Amt")
	pathInstdAmt      = xmlpath.MustCompile("InstdAmt")
	pathInstdAmtAmt   = xmlpath.MustCompile("InstdAmt/Amt")
	pathCntrValAmtAmt = xmlpath.MustCompile("CntrValAmt/Amt")
	pathCcyXchg       = xmlpath.MustCompile("CcyXchg")
	pathSrcCcy        = xmlpath.MustCompile("SrcCcy")
	pathTrgtCcy       = xmlpath.MustCompile("TrgtCcy")
	pathUnitCcy       = xmlpath.MustCompile("UnitCcy")
	pathXchgRate      = xmlpath.MustCompile("XchgRate")
)

// Balance types live in a code-or-proprietary choice that banks nest at
// different depths; the tiers are tried in order.
var balanceTypePaths = []*xmlpath.Path{
	xmlpath.MustCompile("Tp/CdOrPrtry/Cd"),
	xmlpath.MustCompile("Tp/CdOrPrtry/Prtry"),
	xmlpath.MustCompile("Tp/Cd"),
	xmlpath.MustCompile("Tp/Prtry"),
	xmlpath.MustCompile("Tp//Cd"),
	xmlpath.MustCompile("Tp//Prtry"),
}

func parseDocument(root *xmlpath.Node) (*models.Document, error) {
	kind := DetectKind(root)
	if kind == models.KindUnknown {
		return nil, &parsererror.ParseError{
			Parser: "CAMT",
			Source: "document root",
			Err:    parsererror.ErrUnsupportedRoot,
		}
	}

	doc := &models.Document{Kind: kind}

	// The group header is extracted once and copied into every statement.
	var hdr models.GroupHeader
	if n, ok := xmlutils.First(root, groupHeaderPaths[kind]); ok {
		hdr = parseGroupHeader(n)
	}

	for _, sn := range xmlutils.Each(root, statementPaths[kind]) {
		doc.Statements = append(doc.Statements, parseStatement(sn, hdr))
	}
	return doc, nil
}

func parseGroupHeader(n *xmlpath.Node) models.GroupHeader {
	return models.GroupHeader{
		MsgID:            xmlutils.Text(n, pathMsgID),
		CreationDateTime: xmlutils.Text(n, pathCreDtTm),
		MessageRecipient: xmlutils.Text(n, pathMsgRcptNm),
	}
}

// parseStatement handles Stmt, Rpt and Ntfctn containers alike; they share
// the same child layout for everything the model captures.
func parseStatement(n *xmlpath.Node, hdr models.GroupHeader) models.Statement {
	st := models.Statement{
		ID:               xmlutils.Text(n, pathID),
		CreationDateTime: xmlutils.Text(n, pathCreDtTm),
		GroupHeader:      hdr,
	}

	if acct, ok := xmlutils.First(n, pathAcct); ok {
		st.Account = parseAccount(acct)
	}

	for _, bn := range xmlutils.Each(n, pathBal) {
		st.Balances = append(st.Balances, parseBalance(bn))
	}

	for ordinal, en := range xmlutils.Each(n, pathNtry) {
		e := parseEntry(en, st.Account.Currency)
		e.ImportOrdinal = ordinal // original XML order
		st.Entries = append(st.Entries, e)
	}
	return st
}

func parseAccount(n *xmlpath.Node) models.Account {
	a := models.Account{
		Name:     xmlutils.Text(n, pathNm),
		Currency: xmlutils.Text(n, pathCcy),
	}
	if id, ok := xmlutils.First(n, pathID); ok {
		a.ID = parseAccountID(id)
	}
	if sv, ok := xmlutils.First(n, pathSvcr); ok {
		a.Servicer = parseAgent(sv)
	}
	return a
}

func parseAccountID(n *xmlpath.Node) models.AccountID {
	id := models.AccountID{IBAN: xmlutils.Text(n, pathAnyIBAN)}
	if id.IBAN == "" {
		id.Other = xmlutils.Text(n, pathOthrID)
	}
	return id
}

func parseAgent(n *xmlpath.Node) models.Agent {
	a := models.Agent{
		BIC:  xmlutils.Text(n, pathFinInstnBIC),
		Name: xmlutils.Text(n, pathFinInstnNm),
	}
	if a.BIC == "" {
		a.BIC = xmlutils.Text(n, pathFinInstnBICFI)
	}
	return a
}

func parseParty(n *xmlpath.Node) models.Party {
	p := models.Party{
		Name: xmlutils.Text(n, pathAnyNm),
		IBAN: xmlutils.Text(n, pathAnyIBAN),
		BIC:  xmlutils.Text(n, pathAnyBIC),
	}
	if p.BIC == "" {
		p.BIC = xmlutils.Text(n, pathAnyBICFI)
	}
	return p
}

// parseAmount reads an amount element: currency from the Ccy attribute,
// value from the element text converted to minor units.
func parseAmount(n *xmlpath.Node) models.CurrencyAmount {
	ccy := xmlutils.Text(n, pathCcyAttr)
	return models.CurrencyAmount{
		Currency: ccy,
		Minor:    currencyutils.ToMinorUnits(n.String(), currencyutils.Exponent(ccy)),
	}
}

func parseBalance(n *xmlpath.Node) models.Balance {
	b := models.Balance{}

	for _, p := range balanceTypePaths {
		if s := xmlutils.Text(n, p); s != "" {
			b.Type = s
			break
		}
	}

	if a, ok := xmlutils.First(n, pathAmt); ok {
		b.Amount = parseAmount(a)
	}

	if cdi, ok := xmlutils.First(n, pathCdtDbtInd); ok {
		b.HasCreditDebit = true
		b.IsCredit = strings.TrimSpace(cdi.String()) == "CRDT"
	}

	if dn, ok := xmlutils.First(n, pathDt); ok {
		b.Date = xmlutils.Text(dn, pathAnyDt)
		if b.Date == "" {
			if dtm := xmlutils.Text(dn, pathAnyDtTm); dtm != "" {
				b.Date = dateutils.TruncateDateTime(dtm)
			}
		}
		if b.Date == "" {
			b.Date = strings.TrimSpace(dn.String())
		}
	}
	return b
}

// readDateChoice resolves a BookgDt/ValDt date choice: a nested Dt, a
// nested DtTm truncated to its date part, or rarely the element text.
func readDateChoice(n *xmlpath.Node, choice *xmlpath.Path) string {
	dn, ok := xmlutils.First(n, choice)
	if !ok {
		return ""
	}
	if d := xmlutils.Text(dn, pathAnyDt); d != "" {
		return d
	}
	if dtm := xmlutils.Text(dn, pathAnyDtTm); dtm != "" {
		return dateutils.TruncateDateTime(dtm)
	}
	return strings.TrimSpace(dn.String())
}

func parseEntry(n *xmlpath.Node, accountCcy string) models.Entry {
	e := models.Entry{}

	if a, ok := xmlutils.First(n, pathAmt); ok {
		e.Amount = parseAmount(a)
	}
	if cdi, ok := xmlutils.First(n, pathCdtDbtInd); ok {
		e.IsCredit = strings.TrimSpace(cdi.String()) == "CRDT"
	}

	e.BookingDate = readDateChoice(n, pathBookgDt)
	e.BookingDateInt = dateutils.DateInt(e.BookingDate)
	e.ValueDate = readDateChoice(n, pathValDt)
	e.ValueDateInt = dateutils.DateInt(e.ValueDate)

	e.EntryRef = xmlutils.Text(n, pathNtryRef)
	e.Status = xmlutils.Text(n, pathSts)
	if rv := xmlutils.Text(n, pathRvslInd); rv == "true" || rv == "1" {
		e.Reversal = true
	}
	e.AcctSvcrRef = xmlutils.Text(n, pathAcctSvcrRef)

	for ordinal, tn := range xmlutils.Each(n, pathTxDtls) {
		tx := parseTransaction(tn, accountCcy)
		tx.ImportOrdinal = ordinal // preserve TxDtls order
		e.Transactions = append(e.Transactions, tx)
	}
	return e
}

func parseTransaction(n *xmlpath.Node, accountCcy string) models.EntryTransaction {
	t := models.EntryTransaction{}

	if refs, ok := xmlutils.First(n, pathRefs); ok {
		t.Refs = models.References{
			EndToEndID:  xmlutils.Text(refs, pathEndToEndID),
			TxID:        xmlutils.Text(refs, pathTxID),
			AcctSvcrRef: xmlutils.Text(refs, pathAcctSvcrRef),
			MandateID:   xmlutils.Text(refs, pathMndtID),
			MsgID:       xmlutils.Text(refs, pathMsgID),
		}
	}

	if btc, ok := xmlutils.First(n, pathBkTxCd); ok {
		t.BankTxCode = parseBankTxCode(btc)

		if p, ok := xmlutils.First(btc, pathPrtry); ok {
			t.ProprietaryCode.Code = xmlutils.Text(p, pathCd)
			t.ProprietaryCode.Issuer = xmlutils.Text(p, pathIssr)
		}

		// Legacy DTA/GVC pair from the proprietary code, split on '+'.
		t.DTACode = t.ProprietaryCode.Code
		if i := strings.Index(t.DTACode, "+"); i >= 0 && i+1 < len(t.DTACode) {
			t.GVC = t.DTACode[i+1:]
		}
	}

	if rp, ok := xmlutils.First(n, pathRltdPties); ok {
		t.Parties = parseRelatedParties(rp)
	}
	if ra, ok := xmlutils.First(n, pathRltdAgts); ok {
		t.Agents = parseRelatedAgents(ra)
	}
	if rmt, ok := xmlutils.First(n, pathRmtInf); ok {
		t.Remittance = parseRemittance(rmt)
	}
	if p, ok := xmlutils.First(n, pathPurp); ok {
		t.Purpose = models.Purpose{
			Code:        xmlutils.Text(p, pathCd),
			Proprietary: xmlutils.Text(p, pathPrtry),
		}
	}

	// A transaction-level proprietary code overrides the one from BkTxCd.
	if pbc, ok := xmlutils.First(n, pathPrtryBkTxCd); ok {
		if cd, ok := xmlutils.First(pbc, pathCd); ok {
			t.ProprietaryCode.Code = strings.TrimSpace(cd.String())
		}
		if is, ok := xmlutils.First(pbc, pathIssr); ok {
			t.ProprietaryCode.Issuer = strings.TrimSpace(is.String())
		}
	}

	if ch, ok := xmlutils.First(n, pathChrgs); ok {
		t.Charges = parseCharges(ch)
	}
	t.AdditionalInfo = xmlutils.Text(n, pathAddtlTxInf)

	// Transaction amount: prefer a direct Amt, fall back to AmtDtls/TxAmt.
	if a, ok := xmlutils.First(n, pathAmt); ok {
		amt := parseAmount(a)
		t.Amount = &amt
	} else if a, ok := xmlutils.First(n, pathAmtDtlsTxAmt); ok {
		amt := parseAmount(a)
		t.Amount = &amt
	}

	if cdi, ok := xmlutils.First(n, pathCdtDbtInd); ok {
		t.HasCreditDebit = true
		t.IsCredit = strings.TrimSpace(cdi.String()) == "CRDT"
	}

	if ad, ok := xmlutils.First(n, pathAmtDtls); ok {
		parseFxDetails(ad, &t)

		// Prefer an account-currency amount from AmtDtls when the default
		// amount is in a foreign currency.
		if accountCcy != "" {
			if acctAmt, ok := pickAmountInCurrency(ad, accountCcy); ok {
				if t.Amount == nil || t.Amount.Currency != accountCcy {
					t.Amount = &acctAmt
				}
			}
		}
	}

	reconcileFxRate(&t)
	return t
}

func parseBankTxCode(n *xmlpath.Node) models.BankTransactionCode {
	c := models.BankTransactionCode{
		Domain:    xmlutils.Text(n, pathDomnCd),
		Family:    xmlutils.Text(n, pathDomnFmlyCd),
		SubFamily: xmlutils.Text(n, pathDomnSubFmlyCd),
	}
	if p, ok := xmlutils.First(n, pathPrtry); ok {
		c.Proprietary = xmlutils.Text(p, pathCd)
		if c.Proprietary == "" {
			// Some banks put the code directly into Prtry without a Cd child.
			if _, hasChild := xmlutils.First(p, pathAnyChild); !hasChild {
				c.Proprietary = strings.TrimSpace(p.String())
			}
		}
	}
	return c
}

func parseRelatedParties(n *xmlpath.Node) models.RelatedParties {
	rp := models.RelatedParties{}
	if p, ok := xmlutils.First(n, pathDbtr); ok {
		rp.Debtor = parseParty(p)
	}
	if id, ok := xmlutils.First(n, pathDbtrAcctID); ok {
		rp.DebtorAccount = parseAccountID(id)
	}
	if p, ok := xmlutils.First(n, pathUltmtDbtr); ok {
		rp.UltimateDebtor = parseParty(p)
	}
	if p, ok := xmlutils.First(n, pathCdtr); ok {
		rp.Creditor = parseParty(p)
	}
	if id, ok := xmlutils.First(n, pathCdtrAcctID); ok {
		rp.CreditorAccount = parseAccountID(id)
	}
	if p, ok := xmlutils.First(n, pathUltmtCdtr); ok {
		rp.UltimateCreditor = parseParty(p)
	}
	return rp
}

func parseRelatedAgents(n *xmlpath.Node) models.RelatedAgents {
	ra := models.RelatedAgents{}
	if ag, ok := xmlutils.First(n, pathDbtrAgt); ok {
		ra.DebtorAgent = parseAgent(ag)
	}
	if ag, ok := xmlutils.First(n, pathCdtrAgt); ok {
		ra.CreditorAgent = parseAgent(ag)
	}
	return ra
}

func parseRemittance(n *xmlpath.Node) models.RemittanceInformation {
	r := models.RemittanceInformation{}

	for _, s := range xmlutils.Strings(n, pathUstrd) {
		if s != "" {
			r.Unstructured = append(r.Unstructured, s)
		}
	}

	for _, sn := range xmlutils.Each(n, pathStrd) {
		sr := models.StructuredRemittance{}
		if rtp, ok := xmlutils.First(sn, pathAnyRefTp); ok {
			sr.CreditorRefType = xmlutils.Text(rtp, pathAnyCd)
			if sr.CreditorRefType == "" {
				sr.CreditorRefType = xmlutils.Text(rtp, pathAnyPrtry)
			}
		}
		if cri, ok := xmlutils.First(sn, pathAnyCdtrRefInf); ok {
			sr.CreditorRef = xmlutils.Text(cri, pathRef)
		}
		sr.AdditionalInfo = xmlutils.Text(sn, pathAddtlRmtInf)
		r.Structured = append(r.Structured, sr)
	}
	return r
}

func parseCharges(n *xmlpath.Node) models.Charges {
	c := models.Charges{}

	if t, ok := xmlutils.First(n, pathTtlChrgsAndTaxAmt); ok {
		c.Total = parseAmount(t)
	}

	for _, rn := range xmlutils.Each(n, pathRcrd) {
		rec := models.ChargesRecord{}
		if a, ok := xmlutils.First(rn, pathAmt); ok {
			rec.Amount = parseAmount(a)
		}
		if ag, ok := xmlutils.First(rn, pathAgt); ok {
			rec.Agent = parseAgent(ag)
		}
		if cdi, ok := xmlutils.First(rn, pathCdtDbtInd); ok {
			rec.HasCreditDebit = true
			rec.IsCredit = strings.TrimSpace(cdi.String()) == "CRDT"
		}
		if inc := xmlutils.Text(rn, pathChrgInclInd); inc == "true" || inc == "1" {
			rec.Included = true
		}
		c.Records = append(c.Records, rec)
	}
	return c
}

// parseFxDetails captures the optional foreign exchange amounts and the
// declared exchange rate from AmtDtls.
func parseFxDetails(ad *xmlpath.Node, t *models.EntryTransaction) {
	if ia, ok := xmlutils.First(ad, pathInstdAmt); ok {
		if a, ok := xmlutils.First(ia, pathAmt); ok {
			t.FxInstructed = parseAmount(a)
			t.HasFxInstructed = true

			if cx, ok := xmlutils.First(ia, pathCcyXchg); ok {
				t.Fx.SourceCurrency = xmlutils.Text(cx, pathSrcCcy)
				t.Fx.TargetCurrency = xmlutils.Text(cx, pathTrgtCcy)
				t.Fx.UnitCurrency = xmlutils.Text(cx, pathUnitCcy)
				if rn, ok := xmlutils.First(cx, pathXchgRate); ok {
					t.Fx.Rate = parseRate(strings.TrimSpace(rn.String()))
					t.Fx.Has = true
				}
			}
		}
	}
	if a, ok := xmlutils.First(ad, pathTxAmtAmt); ok {
		t.FxTransaction = parseAmount(a)
		t.HasFxTransaction = true
	}
	if a, ok := xmlutils.First(ad, pathCntrValAmtAmt); ok {
		t.FxCounterValue = parseAmount(a)
		t.HasFxCounterValue = true
	}
}

// pickAmountInCurrency selects the first AmtDtls amount carried in the given
// currency, checking TxAmt, InstdAmt and CntrValAmt in that order.
func pickAmountInCurrency(amtDtls *xmlpath.Node, ccy string) (models.CurrencyAmount, bool) {
	for _, p := range []*xmlpath.Path{pathTxAmtAmt, pathInstdAmtAmt, pathCntrValAmtAmt} {
		if a, ok := xmlutils.First(amtDtls, p); ok {
			if ca := parseAmount(a); ca.Currency == ccy {
				return ca, true
			}
		}
	}
	return models.CurrencyAmount{}, false
}

// parseRate converts an exchange rate string to a float, tolerating a
// decimal comma. Unparsable rates resolve to zero.
func parseRate(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.WithField("value", s).Debug("Unparsable exchange rate, using zero")
		return 0
	}
	return r
}
